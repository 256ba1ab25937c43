package store

import (
	"time"

	"github.com/uptrace/bun"
)

// Lead lifecycle stages.
type LeadStage string

const (
	StageNew         LeadStage = "NEW"
	StageContacted   LeadStage = "CONTACTED"
	StageQualified   LeadStage = "QUALIFIED"
	StageNegotiation LeadStage = "NEGOTIATION"
)

// InteractionType classifies a logged communication event.
type InteractionType string

const (
	InteractionCall        InteractionType = "CALL"
	InteractionEmail       InteractionType = "EMAIL"
	InteractionMeeting     InteractionType = "MEETING"
	InteractionNoteAdded   InteractionType = "NOTE_ADDED"
	InteractionStageChange InteractionType = "STAGE_CHANGE"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionNoteAdded, InteractionStageChange:
		return true
	}
	return false
}

type ClientStatus string

const (
	ClientActive    ClientStatus = "ACTIVE"
	ClientPaused    ClientStatus = "PAUSED"
	ClientCompleted ClientStatus = "COMPLETED"
	ClientChurned   ClientStatus = "CHURNED"
)

type PaymentTerms string

const (
	TermsFiftyFifty  PaymentTerms = "FIFTY_FIFTY"
	TermsMilestone   PaymentTerms = "MILESTONE"
	TermsMonthly     PaymentTerms = "MONTHLY"
	TermsFullUpfront PaymentTerms = "FULL_UPFRONT"
)

func (p PaymentTerms) Valid() bool {
	switch p {
	case TermsFiftyFifty, TermsMilestone, TermsMonthly, TermsFullUpfront:
		return true
	}
	return false
}

type DocumentType string

const (
	DocPDF   DocumentType = "PDF"
	DocDOCX  DocumentType = "DOCX"
	DocPNG   DocumentType = "PNG"
	DocJPEG  DocumentType = "JPEG"
	DocOther DocumentType = "OTHER"
)

type ResourceType string

const (
	ResourceTemplate    ResourceType = "TEMPLATE"
	ResourceDesignAsset ResourceType = "DESIGN_ASSET"
	ResourceLearning    ResourceType = "LEARNING"
	ResourceSnippet     ResourceType = "SNIPPET"
)

// Lead is a prospective client, prior to conversion.
type Lead struct {
	bun.BaseModel `bun:"table:leads,alias:l" json:"-"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Email          string    `bun:"email,notnull" json:"email"`
	Company        string    `bun:"company" json:"company"`
	Industry       string    `bun:"industry" json:"industry"`
	Country        string    `bun:"country" json:"country"`
	DealValue      int64     `bun:"deal_value" json:"dealValue"`
	Currency       string    `bun:"currency" json:"currency"`
	ProjectSummary string    `bun:"project_summary" json:"projectSummary"`
	LeadStage      LeadStage `bun:"lead_stage,notnull" json:"leadStage"`
	LeadScore      int       `bun:"lead_score" json:"leadScore"`
	LastContacted  time.Time `bun:"last_contacted,nullzero" json:"lastContacted"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	ContactNotes    []*Note            `bun:"rel:has-many,join:id=lead_id" json:"contactNotes,omitempty"`
	InteractionLogs []*LeadInteraction `bun:"rel:has-many,join:id=lead_id" json:"interactionLogs,omitempty"`
}

type Note struct {
	bun.BaseModel `bun:"table:notes,alias:n" json:"-"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	LeadID    int64     `bun:"lead_id,notnull" json:"leadId"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

type LeadInteraction struct {
	bun.BaseModel `bun:"table:lead_interactions,alias:li" json:"-"`

	ID        int64           `bun:"id,pk,autoincrement" json:"id"`
	LeadID    int64           `bun:"lead_id,notnull" json:"leadId"`
	Type      InteractionType `bun:"type,notnull" json:"type"`
	Content   string          `bun:"content,notnull" json:"content"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Client is a converted, active commercial relationship.
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:c" json:"-"`

	ID           string       `bun:"id,pk" json:"id"`
	Name         string       `bun:"name,notnull" json:"name"`
	CompanyName  string       `bun:"company_name" json:"companyName"`
	Email        string       `bun:"email,notnull" json:"email"`
	Phone        string       `bun:"phone" json:"phone"`
	Country      string       `bun:"country" json:"country"`
	DealValue    int64        `bun:"deal_value" json:"dealValue"`
	Currency     string       `bun:"currency" json:"currency"`
	Status       ClientStatus `bun:"status,notnull" json:"status"`
	PaymentTerms PaymentTerms `bun:"payment_terms,notnull" json:"paymentTerms"`
	Notes        string       `bun:"notes" json:"notes"`
	StartDate    time.Time    `bun:"start_date,nullzero" json:"startDate"`
	CreatedAt    time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time    `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	InteractionLogs []*ClientInteraction `bun:"rel:has-many,join:id=client_id" json:"interactionLogs,omitempty"`
	Documents       []*Document          `bun:"rel:has-many,join:id=client_id" json:"documents,omitempty"`
}

type ClientInteraction struct {
	bun.BaseModel `bun:"table:client_interactions,alias:ci" json:"-"`

	ID        string          `bun:"id,pk" json:"id"`
	ClientID  string          `bun:"client_id,notnull" json:"clientId"`
	Type      InteractionType `bun:"type,notnull" json:"type"`
	Content   string          `bun:"content,notnull" json:"content"`
	CreatedAt time.Time       `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d" json:"-"`

	ID        string       `bun:"id,pk" json:"id"`
	ClientID  string       `bun:"client_id,notnull" json:"clientId"`
	Name      string       `bun:"name,notnull" json:"name"`
	URL       string       `bun:"url,notnull" json:"url"`
	Type      DocumentType `bun:"type,notnull" json:"type"`
	CreatedAt time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

// Resource is a knowledge-hub library entry.
type Resource struct {
	bun.BaseModel `bun:"table:resources,alias:r" json:"-"`

	ID          string       `bun:"id,pk" json:"id"`
	Title       string       `bun:"title,notnull" json:"title"`
	Description string       `bun:"description" json:"description"`
	Type        ResourceType `bun:"type,notnull" json:"type"`
	Content     string       `bun:"content" json:"content"`
	URL         string       `bun:"url" json:"url"`
	Tags        []string     `bun:"tags,array" json:"tags"`
	CreatedAt   time.Time    `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time    `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

type PortfolioItem struct {
	bun.BaseModel `bun:"table:portfolio_items,alias:pi" json:"-"`

	ID               int64    `bun:"id,pk,autoincrement" json:"id"`
	CompanyName      string   `bun:"company_name,notnull" json:"companyName"`
	CompanyLogo      string   `bun:"company_logo" json:"companyLogo"`
	Industry         string   `bun:"industry" json:"industry"`
	Location         string   `bun:"location" json:"location"`
	Website          string   `bun:"website" json:"website"`
	HeroLine         string   `bun:"hero_line" json:"heroLine"`
	HeroImage        string   `bun:"hero_image" json:"heroImage"`
	Description      string   `bun:"description" json:"description"`
	ProjectDuration  string   `bun:"project_duration" json:"projectDuration"`
	ProblemStatement string   `bun:"problem_statement" json:"problemStatement"`
	Solution         string   `bun:"solution" json:"solution"`
	Results          string   `bun:"results" json:"results"`
	Services         []string `bun:"services,array" json:"services"`
	Media            []string `bun:"media,array" json:"media"`

	Testimonial *Testimonial    `bun:"rel:has-one,join:id=portfolio_item_id" json:"testimonial,omitempty"`
	Stats       *PortfolioStats `bun:"rel:has-one,join:id=portfolio_item_id" json:"stats,omitempty"`
}

type Testimonial struct {
	bun.BaseModel `bun:"table:testimonials,alias:t" json:"-"`

	ID              int64  `bun:"id,pk,autoincrement" json:"id"`
	PortfolioItemID int64  `bun:"portfolio_item_id,notnull,unique" json:"portfolioItemId"`
	Quote           string `bun:"quote" json:"quote"`
	Author          string `bun:"author" json:"author"`
	Designation     string `bun:"designation" json:"designation"`
}

type PortfolioStats struct {
	bun.BaseModel `bun:"table:portfolio_stats,alias:ps" json:"-"`

	ID                     int64  `bun:"id,pk,autoincrement" json:"id"`
	PortfolioItemID        int64  `bun:"portfolio_item_id,notnull,unique" json:"portfolioItemId"`
	ConversionRateIncrease string `bun:"conversion_rate_increase" json:"conversionRateIncrease"`
	TrafficGrowth          string `bun:"traffic_growth" json:"trafficGrowth"`
	UserGrowth             string `bun:"user_growth" json:"userGrowth"`
}

type PricingCategory struct {
	bun.BaseModel `bun:"table:pricing_categories,alias:pc" json:"-"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull" json:"name"`

	Plans []*PricingPlan `bun:"rel:has-many,join:id=category_id" json:"plans"`
}

type PricingPlan struct {
	bun.BaseModel `bun:"table:pricing_plans,alias:pp" json:"-"`

	ID                     int64    `bun:"id,pk,autoincrement" json:"id"`
	CategoryID             int64    `bun:"category_id,notnull" json:"categoryId"`
	Name                   string   `bun:"name,notnull" json:"name"`
	Description            string   `bun:"description" json:"description"`
	Price                  string   `bun:"price" json:"price"`
	Featured               bool     `bun:"featured" json:"featured"`
	EverythingIncludedPrev bool     `bun:"everything_included_prev" json:"everythingIncludedPrev"`
	Features               []string `bun:"features,array" json:"features"`
	FeaturesNotIncluded    []string `bun:"features_not_included,array" json:"featuresNotIncluded"`
}
