package parallax

import "errors"

var (
	// ErrNoDevice is returned when a node needs a Device and the Context has none.
	ErrNoDevice = errors.New("parallax: no device")
	// ErrNoProgram is returned when a draw happens outside any ShaderNode.
	ErrNoProgram = errors.New("parallax: no active program")
	// ErrInvalidProgram is returned for nil or released programs.
	ErrInvalidProgram = errors.New("parallax: invalid program")
	// ErrInvalidTexture is returned for nil or released textures.
	ErrInvalidTexture = errors.New("parallax: invalid texture")
	// ErrInvalidBuffer is returned for nil or released geometry buffers.
	ErrInvalidBuffer = errors.New("parallax: invalid buffer")
	// ErrTextureUnit is returned for texture units outside [0, MaxTextureUnits).
	ErrTextureUnit = errors.New("parallax: texture unit out of range")
	// ErrUniformType is returned for uniform values of an unsupported type.
	ErrUniformType = errors.New("parallax: unsupported uniform type")
	// ErrInvalidGeometry is returned for vertex data with inconsistent lengths
	// or out-of-range indices.
	ErrInvalidGeometry = errors.New("parallax: invalid geometry")
)
