package renderer

// Attribute locations follow the field order of mesh.Vertex.
const chunkVertexShader = `
#version 410 core

layout (location = 0) in vec4 aPosition;
layout (location = 1) in vec4 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec4 aUV;
layout (location = 4) in vec4 aAppearance;
layout (location = 5) in vec4 aBiome;

uniform mat4 uViewProj;
uniform vec3 uEye;

out vec3 vNormal;
out vec4 vColor;
out vec4 vUV;
out vec4 vAppearance;
out vec4 vBiome;
out float vDist;

void main() {
	gl_Position = uViewProj * aPosition;
	vNormal = aNormal.xyz;
	vColor = aColor;
	vUV = aUV;
	vAppearance = aAppearance;
	vBiome = aBiome;
	vDist = distance(aPosition.xyz, uEye);
}
`

const chunkFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vColor;
in vec4 vUV;
in vec4 vAppearance;
in vec4 vBiome;
in float vDist;

uniform sampler2D uAtlas;
uniform float uTime;
uniform vec3 uSunDir;
uniform vec3 uFogColor;
uniform float uFogFar;

out vec4 FragColor;

const float CELLS = 16.0;

// Grassland, desert, mountains, tundra.
const vec3 TINTS[4] = vec3[4](
	vec3(0.55, 0.80, 0.35),
	vec3(0.85, 0.78, 0.45),
	vec3(0.55, 0.65, 0.55),
	vec3(0.80, 0.88, 0.90)
);

void main() {
	float flag = vAppearance.z;
	vec4 texel;
	if (flag < -0.5) {
		texel = vColor;
	} else if (flag > 0.5 && flag < 1.5) {
		// Animated cells scroll inside their own cell.
		vec2 local = fract(vUV.zw + vec2(0.0, uTime * 0.25));
		texel = texture(uAtlas, (vAppearance.xy + local) / CELLS) * vColor;
	} else {
		texel = texture(uAtlas, vUV.xy) * vColor;
	}
	if (flag > 1.5 && texel.a < 0.5) {
		discard;
	}

	vec3 tint = TINTS[0] * vBiome.x + TINTS[1] * vBiome.y + TINTS[2] * vBiome.z + TINTS[3] * vBiome.w;
	vec3 rgb = texel.rgb * mix(vec3(1.0), tint, 0.3);

	float light = 0.45 + 0.55 * max(dot(normalize(vNormal), uSunDir), 0.0);
	rgb *= light;

	float fog = clamp((vDist - uFogFar * 0.6) / (uFogFar * 0.4), 0.0, 1.0);
	FragColor = vec4(mix(rgb, uFogColor, fog), texel.a);
}
`
