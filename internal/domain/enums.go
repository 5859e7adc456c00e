package domain

// SupportedImageTypes maps accepted MIME types to their stored file extension.
var SupportedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// MaxImageSizeBytes is the upload size ceiling (10 MiB).
const MaxImageSizeBytes = 10 * 1024 * 1024

// ImageVariant describes one derived rendition of an uploaded image.
// Zero Width/Height means no resize, quality re-encode only.
type ImageVariant struct {
	Name    string
	Width   int
	Height  int
	Quality int
}

// Variant names, also used as URL map keys in UploadResult.
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
	VariantOriginal  = "original"
)

// ImageVariants is the fixed variant plan applied to every upload.
var ImageVariants = []ImageVariant{
	{Name: VariantThumbnail, Width: 150, Height: 150, Quality: 70},
	{Name: VariantMedium, Width: 600, Height: 600, Quality: 80},
	{Name: VariantLarge, Width: 1200, Height: 1200, Quality: 85},
	{Name: VariantOriginal, Quality: 90},
}

// VariantNames returns the configured variant names in plan order.
func VariantNames() []string {
	names := make([]string, len(ImageVariants))
	for i, v := range ImageVariants {
		names[i] = v.Name
	}
	return names
}

// StoredFilename derives the object key for one variant of an asset.
// The original keeps a bare "{id}.{ext}" name; derived variants append
// the variant name.
func StoredFilename(assetID, variantName, ext string) string {
	if variantName == VariantOriginal {
		return assetID + "." + ext
	}
	return assetID + "_" + variantName + "." + ext
}

// VariantPrefix returns the listing prefix that matches one variant's
// stored filename regardless of extension. The trailing dot keeps the
// original's prefix from matching derived variant names.
func VariantPrefix(assetID, variantName string) string {
	if variantName == VariantOriginal {
		return assetID + "."
	}
	return assetID + "_" + variantName + "."
}

// GemStatus represents the publication state of a listing.
type GemStatus string

const (
	GemStatusDraft     GemStatus = "draft"
	GemStatusPublished GemStatus = "published"
	GemStatusArchived  GemStatus = "archived"
)

// SubmissionStatus represents the moderation state of a visitor submission.
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)
