package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Wardrobe item categories
const (
	CategoryTops        = "tops"
	CategoryBottoms     = "bottoms"
	CategoryDresses     = "dresses"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
	CategoryOuterwear   = "outerwear"
)

// Challenge types
const (
	ChallengeNeglectedItems   = "neglected_items"
	ChallengeColorExploration = "color_exploration"
	ChallengeStyleMixing      = "style_mixing"
)

// WardrobeItem represents a single garment owned by a user
type WardrobeItem struct {
	ID            uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string                     `gorm:"index;not null" json:"user_id"`
	Name          string                     `gorm:"not null" json:"name"`
	Category      string                     `gorm:"index;not null" json:"category"`
	Colors        datatypes.JSONSlice[string] `json:"colors"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	PurchasePrice *float64                   `json:"purchase_price"`
	PurchaseDate  *time.Time                 `json:"purchase_date"`
	LastWorn      *time.Time                 `gorm:"index" json:"last_worn"`
	UsageCount    uint32                     `gorm:"default:0" json:"usage_count"`
	IsActive      bool                       `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

func (i *WardrobeItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OutfitFeedback records a worn outfit and the user's confidence rating.
// Every item listed in ItemIDs counts one wear event.
type OutfitFeedback struct {
	ID               uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string                     `gorm:"index;not null" json:"user_id"`
	ItemIDs          datatypes.JSONSlice[string] `json:"item_ids"`
	ConfidenceRating int                        `gorm:"not null" json:"confidence_rating"` // 1-5
	Notes            string                     `json:"notes"`
	CreatedAt        time.Time                  `gorm:"index" json:"created_at"`
}

func (f *OutfitFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// RediscoveryChallenge is a time-boxed prompt to re-wear neglected items.
// Progress is always len(ConfirmedItemIDs), so confirming the same item
// twice cannot move it.
type RediscoveryChallenge struct {
	ID               uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string                     `gorm:"index;not null" json:"user_id"`
	ChallengeType    string                     `gorm:"not null" json:"challenge_type"`
	Title            string                     `json:"title"`
	Description      string                     `json:"description"`
	Reward           string                     `json:"reward"`
	TargetItemIDs    datatypes.JSONSlice[string] `json:"target_item_ids"`
	ConfirmedItemIDs datatypes.JSONSlice[string] `json:"confirmed_item_ids"`
	Progress         int                        `gorm:"default:0" json:"progress"`
	TotalItems       int                        `gorm:"not null" json:"total_items"`
	ExpiresAt        time.Time                  `gorm:"not null" json:"expires_at"`
	CompletedAt      *time.Time                 `json:"completed_at"`
	IsActive         bool                       `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

func (c *RediscoveryChallenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsCompleted reports whether every target item has been confirmed
func (c *RediscoveryChallenge) IsCompleted() bool {
	return c.Progress >= c.TotalItems
}

// PurchaseRecord is a single clothing purchase, used for shopping-behavior
// tracking. ItemID links to a wardrobe item when the purchase was captured.
type PurchaseRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"index;not null" json:"user_id"`
	ItemID      *string    `json:"item_id"`
	Amount      float64    `gorm:"not null" json:"amount"`
	PurchasedAt time.Time  `gorm:"index;not null" json:"purchased_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *PurchaseRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RecommendationLog is the analytics row persisted for each generated
// shop-your-closet recommendation. Best-effort only; never the source of
// truth for recommendation state.
type RecommendationLog struct {
	ID                uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string                     `gorm:"index;not null" json:"user_id"`
	TargetDescription string                     `json:"target_description"`
	TargetCategory    string                     `json:"target_category"`
	TargetColors      datatypes.JSONSlice[string] `json:"target_colors"`
	TargetStyle       string                     `json:"target_style"`
	SimilarItemIDs    datatypes.JSONSlice[string] `json:"similar_item_ids"`
	ConfidenceScore   float64                    `json:"confidence_score"`
	Reasoning         datatypes.JSONSlice[string] `json:"reasoning"`
	CreatedAt         time.Time                  `json:"created_at"`
}

func (l *RecommendationLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TargetItem describes a prospective purchase being scored against the
// user's existing wardrobe
type TargetItem struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Colors      []string `json:"colors"`
	Style       string   `json:"style"`
}

// ClosetRecommendation is the derived shop-your-closet result. Not persisted;
// only logged through the analytics emitter.
type ClosetRecommendation struct {
	TargetItem        TargetItem     `json:"target_item"`
	SimilarOwnedItems []WardrobeItem `json:"similar_owned_items"`
	ConfidenceScore   float64        `json:"confidence_score"` // 0-1; 0 iff no similar items
	Reasoning         []string       `json:"reasoning"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

// CostPerWearRecord is a derived per-item amortization view
type CostPerWearRecord struct {
	ItemID              string  `json:"item_id"`
	PurchasePrice       float64 `json:"purchase_price"`
	TotalWears          int     `json:"total_wears"`
	DaysSincePurchase   int     `json:"days_since_purchase"`
	CostPerWear         float64 `json:"cost_per_wear"`
	ProjectedCostPerWear float64 `json:"projected_cost_per_wear"`
}

// ItemConfidence ranks one item by the outfits it appeared in
type ItemConfidence struct {
	ItemID            string  `json:"item_id"`
	AverageConfidence float64 `json:"average_confidence"`
	OutfitCount       int     `json:"outfit_count"`
}

// MonthlyConfidenceMetrics aggregates outfit feedback for one calendar month
type MonthlyConfidenceMetrics struct {
	Month                   int              `json:"month"`
	Year                    int              `json:"year"`
	TotalOutfitsRated       int              `json:"total_outfits_rated"`
	AverageConfidenceRating float64          `json:"average_confidence_rating"`
	MostConfidentItems      []ItemConfidence `json:"most_confident_items"`
	LeastConfidentItems     []ItemConfidence `json:"least_confident_items"`
}

// MonthlySpend summarizes purchases in one calendar month
type MonthlySpend struct {
	Count int     `json:"count"`
	Spend float64 `json:"spend"`
}

// ShoppingBehaviorData is the derived anti-consumption view of a user's
// recent purchase activity
type ShoppingBehaviorData struct {
	MonthlyPurchases       MonthlySpend `json:"monthly_purchases"`
	PreviousMonthPurchases MonthlySpend `json:"previous_month_purchases"`
	ReductionPercentage    float64      `json:"reduction_percentage"`
	StreakDays             int          `json:"streak_days"`
	TotalSavings           float64      `json:"total_savings"`
}
