package math

/**
 * @brief Orientation of an object as Euler angles in degrees.
 * Angles accumulate without wrapping while the object is being
 * rotated; use Normalized() when comparing orientations.
 */
type Orientation struct {
	/** @brief Rotation about the horizontal screen axis. */
	Pitch float64
	/** @brief Rotation about the vertical screen axis. */
	Yaw float64
	/** @brief Rotation about the viewing axis. */
	Roll float64
}
