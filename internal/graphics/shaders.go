package graphics

// chunkVertexSrc takes the interleaved layout written by interleave:
// position (location 0), color (1), uv (2).
const chunkVertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec4 aColor;
layout(location = 2) in vec2 aUV;

uniform mat4 view;
uniform mat4 proj;

out vec3 vWorld;
out vec4 vColor;
out vec2 vUV;

void main() {
	vWorld = aPos;
	vColor = aColor;
	vUV = aUV;
	gl_Position = proj * view * vec4(aPos, 1.0);
}`

// Vertices are shared between faces, so the normal is rebuilt per fragment
// from screen-space derivatives.
const chunkFragmentSrc = `#version 410 core
in vec3 vWorld;
in vec4 vColor;
in vec2 vUV;

uniform vec3 lightDir;
uniform bool wireframe;
uniform vec4 wireColor;

out vec4 fragColor;

void main() {
	if (wireframe) {
		fragColor = wireColor;
		return;
	}
	vec3 n = normalize(cross(dFdx(vWorld), dFdy(vWorld)));
	float diffuse = max(dot(n, lightDir), 0.0);
	fragColor = vec4(vColor.rgb * (0.35 + 0.65 * diffuse), vColor.a);
}`
