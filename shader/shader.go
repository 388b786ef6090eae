// Package shader holds the GLSL sources for the mesh pipeline.
package shader

const meshVertexShaderGL = `#version 410 core
layout (location = 0) in vec3 in_position;
layout (location = 1) in vec3 in_normal;
layout (location = 2) in vec2 in_uv;

uniform mat4 uProjection;
uniform mat4 uView;
uniform mat4 uModel;
uniform mat3 uNormalMatrix;

out vec3 frag_pos;
out vec3 frag_normal;
out vec2 frag_uv;

void main() {
    vec4 world = uModel * vec4(in_position, 1.0);
    frag_pos = world.xyz;
    frag_normal = uNormalMatrix * in_normal;
    frag_uv = in_uv;
    gl_Position = uProjection * uView * world;
}
`

// Blinn-Phong with a single directional light and an optional diffuse map.
const meshFragmentShaderGL = `#version 410 core
in vec3 frag_pos;
in vec3 frag_normal;
in vec2 frag_uv;

out vec4 fragColor;

uniform vec3  uViewPos;
uniform vec3  uLightDir;
uniform vec3  uAmbient;
uniform vec3  uDiffuse;
uniform vec3  uSpecular;
uniform float uShininess;
uniform float uOpacity;
uniform int   uHasTexture;
uniform sampler2D uDiffuseTex;

void main() {
    vec3 n = normalize(frag_normal);
    vec3 l = normalize(-uLightDir);

    vec3 base = uDiffuse;
    if (uHasTexture == 1) {
        base *= texture(uDiffuseTex, frag_uv).rgb;
    }

    float ndl = max(dot(n, l), 0.0);
    vec3 v = normalize(uViewPos - frag_pos);
    vec3 h = normalize(l + v);
    float spec = 0.0;
    if (ndl > 0.0) {
        spec = pow(max(dot(n, h), 0.0), uShininess);
    }

    vec3 color = uAmbient + base * ndl + uSpecular * spec;
    fragColor = vec4(color, uOpacity);
}
`

// GetMeshVertexShader returns the vertex shader for the mesh pipeline.
func GetMeshVertexShader() string {
	return meshVertexShaderGL
}

// GetMeshFragmentShader returns the fragment shader for the mesh pipeline.
func GetMeshFragmentShader() string {
	return meshFragmentShaderGL
}
