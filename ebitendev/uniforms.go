package ebitendev

import (
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/parallax"
)

// Kage uniform names set by the device itself rather than mapped from a
// program uniform.
const (
	kageCameraPos = "CameraPos"
	kageLightPos  = "LightPos"
	kageTextured  = "Textured"
)

// samplerSlots maps sampler uniforms to the Kage source image slot they feed.
var samplerSlots = map[string]int{
	parallax.SamplerDiffuse: 0,
	parallax.SamplerNormal:  1,
	parallax.SamplerHeight:  2,
}

// kageName converts a GL style uniform name to the exported Kage variable it
// feeds: the u_ prefix is dropped and every '_' or '.' separated word is
// capitalized, so "u_height_scale" becomes "HeightScale" and
// "u_material.ambient" becomes "MaterialAmbient".
func kageName(name string) string {
	name = strings.TrimPrefix(name, "u_")
	var b strings.Builder
	b.Grow(len(name))
	upper := true
	for _, r := range name {
		if r == '_' || r == '.' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// kageValue converts a uniform value to a type Ebitengine accepts. Vectors,
// matrices and colors become []float32; matrices stay column-major.
func kageValue(v any) (any, bool) {
	switch v := v.(type) {
	case float32, int, int32:
		return v, true
	case float64:
		return float32(v), true
	case bool:
		if v {
			return float32(1), true
		}
		return float32(0), true
	case mgl32.Vec2:
		return v[:], true
	case mgl32.Vec3:
		return v[:], true
	case mgl32.Vec4:
		return v[:], true
	case mgl32.Mat3:
		return v[:], true
	case mgl32.Mat4:
		return v[:], true
	case parallax.Color:
		return []float32{v.R, v.G, v.B, v.A}, true
	}
	return nil, false
}

// kageUniforms builds the uniform map of one draw: the program's persistent
// uniforms overlaid with the call's, renamed for Kage, plus the world-space
// camera and light positions the fragment programs light with.
func kageUniforms(persistent map[string]any, call *parallax.DrawCall) map[string]any {
	out := make(map[string]any, len(persistent)+len(call.Uniforms)+3)
	put := func(src map[string]any) {
		for name, v := range src {
			if _, ok := samplerSlots[name]; ok {
				continue
			}
			if kv, ok := kageValue(v); ok {
				out[kageName(name)] = kv
			}
		}
	}
	put(persistent)
	put(call.Uniforms)

	eye := call.View.Inv().Col(3).Vec3()
	out[kageCameraPos] = eye[:]
	if len(call.Lights) > 0 {
		lp := call.Lights[0].World
		out[kageLightPos] = lp[:]
	}
	textured := float32(0)
	if unit, ok := samplerUnit(persistent, call.Uniforms, parallax.SamplerDiffuse); ok && call.Units[unit] != nil {
		textured = 1
	}
	out[kageTextured] = textured
	return out
}

// imageSlots returns, per Kage source image slot, the texture unit bound to
// the sampler that feeds it, or -1 when the slot keeps its fallback image.
// A sampler pointing at an empty or invalid unit also falls back.
func imageSlots(units [parallax.MaxTextureUnits]parallax.Texture, persistent, scoped map[string]any) [4]int {
	slots := [4]int{-1, -1, -1, -1}
	for sampler, slot := range samplerSlots {
		unit, ok := samplerUnit(persistent, scoped, sampler)
		if !ok || units[unit] == nil || !units[unit].Valid() {
			continue
		}
		slots[slot] = unit
	}
	return slots
}

// samplerUnit returns the texture unit the sampler uniform points at.
func samplerUnit(persistent, scoped map[string]any, sampler string) (int, bool) {
	v, ok := scoped[sampler]
	if !ok {
		v, ok = persistent[sampler]
	}
	if !ok {
		return 0, false
	}
	var unit int
	switch v := v.(type) {
	case int32:
		unit = int(v)
	case int:
		unit = v
	default:
		return 0, false
	}
	if unit < 0 || unit >= parallax.MaxTextureUnits {
		return 0, false
	}
	return unit, true
}
