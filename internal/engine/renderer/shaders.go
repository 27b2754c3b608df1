package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;

void main() {
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
out vec4 FragColor;

uniform vec3 uColor;
uniform vec3 uSkyColor;
uniform vec3 uGroundColor;
uniform float uHemi;
uniform vec3 uSunColor;
uniform vec3 uSunDir;
uniform float uDir;
uniform float uMarker;

void main() {
	vec3 n = normalize(vNormal);
	vec3 hemi = mix(uGroundColor, uSkyColor, 0.5 + 0.5 * n.y) * uHemi;
	vec3 sun = uSunColor * max(dot(n, normalize(uSunDir)), 0.0) * uDir;
	vec3 lit = uColor * (hemi + sun);
	FragColor = vec4(mix(lit, uColor, uMarker * 0.6), 1.0);
}
`
