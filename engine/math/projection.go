package math

/**
 * @brief Creates and returns a right-handed perspective matrix. Typically used to
 * render 3d scenes. Clip-space w receives -z, so points in front of the camera
 * (negative z in view space) end up with a positive w.
 *
 * @param fov_radians The vertical field of view in radians.
 * @param aspect_ratio The aspect ratio.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fov_radians, aspect_ratio, near_clip, far_clip float32) Mat4 {
	inverse_range := 1.0 / ktan(fov_radians*0.5)
	out_matrix := Mat4{}
	out_matrix.Data[0] = inverse_range / aspect_ratio
	out_matrix.Data[5] = inverse_range
	out_matrix.Data[10] = -(far_clip + near_clip) / (far_clip - near_clip)
	out_matrix.Data[11] = -1.0
	out_matrix.Data[14] = -(2.0 * far_clip * near_clip) / (far_clip - near_clip)
	return out_matrix
}

/**
 * @brief Builds the perspective matrix described by params. The result only
 * depends on the four parameters, so it can be cached until one of them changes.
 */
func BuildProjection(params ProjectionParams) Mat4 {
	return NewMat4Perspective(params.FOV, params.Aspect, params.Near, params.Far)
}

/**
 * @brief Returns a copy of params with the aspect ratio derived from a
 * framebuffer size. A zero height leaves the aspect untouched.
 */
func (params ProjectionParams) WithViewport(width, height uint32) ProjectionParams {
	if height == 0 {
		return params
	}
	params.Aspect = float32(width) / float32(height)
	return params
}
