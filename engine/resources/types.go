package resources

import "image"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or ignored file. */
	ResourceTypeNone ResourceType = iota
	/** @brief Experience records (toml, yaml or json). */
	ResourceTypeContent
	/** @brief Company logo or other picture drawn on a face. */
	ResourceTypeImage
	/** @brief Records fetched from the remote data service. */
	ResourceTypeRemote
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeContent:
		return "content"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeRemote:
		return "remote"
	case ResourceTypeCustom:
		return "custom"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The resource type that produced Data. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path or URL of the resource. */
	FullPath string
	/** @brief The size of the raw resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. []Experience or *ImageResourceData. */
	Data interface{}
}

/**
 * @brief A structure to hold image resource data.
 */
type ImageResourceData struct {
	/** @brief The decoder that recognised the file ("png", "webp", ...). */
	Format string
	/** @brief The width of the image after scaling. */
	Width uint32
	/** @brief The height of the image after scaling. */
	Height uint32
	/** @brief The pixel data of the image. */
	Image image.Image
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Bounding box the image is scaled into, aspect preserved. Zero keeps the source size. */
	MaxWidth  int
	MaxHeight int
}
