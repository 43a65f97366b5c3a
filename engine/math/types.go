package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/**
 * @brief a 4x4 matrix, used to represent camera and projection transforms.
 *
 * Elements are stored column-major, which is the layout the graphics API
 * expects for uniform uploads: the element at row r, column c lives at
 * Data[c*4+r]. The translation of an affine matrix therefore sits in
 * Data[12], Data[13] and Data[14].
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief The parameters of a perspective projection.
 * Callers must keep 0 < Near < Far, 0 < FOV < PI and Aspect > 0.
 * Values outside those ranges produce a meaningless matrix, never a panic.
 */
type ProjectionParams struct {
	/** @brief The near clipping plane distance. */
	Near float32
	/** @brief The far clipping plane distance. */
	Far float32
	/** @brief The vertical field of view in radians. */
	FOV float32
	/** @brief The aspect ratio (width / height). */
	Aspect float32
}
