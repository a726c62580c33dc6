package entities

import "time"

// Category discriminates the asset variants. The set is closed; switches
// over it are exhaustive so a new category fails loudly at compile review,
// not at runtime.
type Category string

const (
	CategoryMusic          Category = "music"
	CategorySFX            Category = "sfx"
	CategoryMotionGraphics Category = "motion_graphics"
	CategoryLUT            Category = "lut"
	CategoryStockFootage   Category = "stock_footage"
)

func ValidCategory(category Category) bool {
	switch category {
	case CategoryMusic, CategorySFX, CategoryMotionGraphics, CategoryLUT, CategoryStockFootage:
		return true
	}
	return false
}

// Details carries the category-specific fields. Exactly one concrete type
// matches each Category.
type Details interface {
	Category() Category
}

type MusicDetails struct {
	DurationSeconds int    `json:"duration_seconds"`
	BPM             int    `json:"bpm"`
	KeySignature    string `json:"key_signature"`
	Stems           int    `json:"stems"`
}

func (MusicDetails) Category() Category { return CategoryMusic }

type SFXDetails struct {
	DurationSeconds int    `json:"duration_seconds"`
	LoopReady       bool   `json:"loop_ready"`
	SampleRateHz    int    `json:"sample_rate_hz"`
	Mood            string `json:"mood"`
}

func (SFXDetails) Category() Category { return CategorySFX }

type MotionGraphicsDetails struct {
	Resolution      string `json:"resolution"`
	FrameRate       int    `json:"frame_rate"`
	DurationSeconds int    `json:"duration_seconds"`
	AlphaChannel    bool   `json:"alpha_channel"`
}

func (MotionGraphicsDetails) Category() Category { return CategoryMotionGraphics }

type LUTDetails struct {
	Format    string `json:"format"`
	Intensity string `json:"intensity"`
}

func (LUTDetails) Category() Category { return CategoryLUT }

type StockFootageDetails struct {
	Resolution      string `json:"resolution"`
	FrameRate       int    `json:"frame_rate"`
	DurationSeconds int    `json:"duration_seconds"`
	Location        string `json:"location"`
}

func (StockFootageDetails) Category() Category { return CategoryStockFootage }

// Asset is one catalog row. WorkflowState is owned by the workflow context;
// the catalog stores it as the authoritative server-side value.
type Asset struct {
	AssetID       string
	Title         string
	Description   string
	ContributorID string
	Category      Category
	Details       Details
	WorkflowState string
	CollectionID  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
