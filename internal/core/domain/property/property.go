package property

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

// Property is one homestay website. Slug doubles as the subdomain label.
type Property struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	TenantID           uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name               string    `json:"name" db:"name"`
	Slug               string    `json:"slug" db:"slug"`
	CustomDomain       *string   `json:"custom_domain,omitempty" db:"custom_domain"`
	Description        *string   `json:"description,omitempty" db:"description"`
	HeroTitle          *string   `json:"hero_title,omitempty" db:"hero_title"`
	HeroSubtitle       *string   `json:"hero_subtitle,omitempty" db:"hero_subtitle"`
	HeroImage          *string   `json:"hero_image,omitempty" db:"hero_image"`
	AboutTitle         *string   `json:"about_title,omitempty" db:"about_title"`
	AboutContent       *string   `json:"about_content,omitempty" db:"about_content"`
	AboutImage         *string   `json:"about_image,omitempty" db:"about_image"`
	Address            *string   `json:"address,omitempty" db:"address"`
	Phone              *string   `json:"phone,omitempty" db:"phone"`
	Email              *string   `json:"email,omitempty" db:"email"`
	WhatsappNumber     *string   `json:"whatsapp_number,omitempty" db:"whatsapp_number"`
	FooterBio          *string   `json:"footer_bio,omitempty" db:"footer_bio"`
	ConnectTitle       *string   `json:"connect_title,omitempty" db:"connect_title"`
	ConnectDescription *string   `json:"connect_description,omitempty" db:"connect_description"`
	LocationAddress    *string   `json:"location_address,omitempty" db:"location_address"`
	SocialLinks        JSONMap   `json:"social_links,omitempty" db:"social_links"`
	Logo               *string   `json:"logo,omitempty" db:"logo"`
	ThemeConfig        JSONMap   `json:"theme_config,omitempty" db:"theme_config"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether tenantID owns the property.
func (p *Property) OwnedBy(tenantID uuid.UUID) bool {
	return p != nil && p.TenantID == tenantID
}

type Room struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	PropertyID  uuid.UUID      `json:"property_id" db:"property_id"`
	Type        string         `json:"type" db:"type"`
	Description *string        `json:"description,omitempty" db:"description"`
	PriceLKR    float64        `json:"price_lkr" db:"price_lkr"`
	Capacity    int            `json:"capacity" db:"capacity"`
	Image       *string        `json:"image,omitempty" db:"image"`
	Features    pq.StringArray `json:"features" db:"features"`
}

type Amenity struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PropertyID  uuid.UUID `json:"property_id" db:"property_id"`
	Name        string    `json:"name" db:"name"`
	Icon        *string   `json:"icon,omitempty" db:"icon"`
	Description *string   `json:"description,omitempty" db:"description"`
}

type Testimonial struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	Content    string    `json:"content" db:"content"`
	Author     string    `json:"author" db:"author"`
	Location   *string   `json:"location,omitempty" db:"location"`
}

type GalleryImage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	URL        string    `json:"url" db:"url"`
	Alt        *string   `json:"alt,omitempty" db:"alt"`
}

// Site is a property together with every section rendered on its public page.
type Site struct {
	*Property
	Rooms        []*Room         `json:"rooms"`
	Amenities    []*Amenity      `json:"amenities"`
	Testimonials []*Testimonial  `json:"testimonials"`
	Gallery      []*GalleryImage `json:"gallery"`
}

var (
	ErrNotFound        = domain.NotFound("Property not found.")
	ErrSiteUnavailable = domain.NotFound("site unavailable")
	ErrSlugTaken       = domain.Conflict("Subdomain is already taken.")
	ErrDomainTaken     = domain.Conflict("Custom domain is already in use.")
	ErrNameSlugMissing = domain.Invalid("Name and subdomain are required.")
	ErrInvalidSlug     = domain.Invalid("Subdomain may only contain lowercase letters, numbers and hyphens.")
	ErrPlanLimit       = domain.Forbidden("Your subscription plan does not allow more properties.")
	ErrRoomNotFound    = domain.NotFound("Room not found.")
	ErrAmenityNotFound = domain.NotFound("Amenity not found.")
	ErrTestimonialGone = domain.NotFound("Testimonial not found.")
	ErrImageNotFound   = domain.NotFound("Image not found.")
	ErrRoomFields      = domain.Invalid("Room type, price, and capacity are required")
	ErrAmenityName     = domain.Invalid("Amenity name is required.")
	ErrTestimonialBody = domain.Invalid("Content and author name are required.")
)

// SlugPattern matches a single DNS label made of lowercase alphanumerics and hyphens.
var SlugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

func NotOwned(what string) error {
	return domain.Forbidden(fmt.Sprintf("You don't have permission to modify this %s.", what))
}

// CreatePropertyRequest is the dashboard form for a new site.
type CreatePropertyRequest struct {
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
}

// Normalize trims input and lowercases the slug.
func (r *CreatePropertyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreatePropertyRequest) Validate() error {
	if r.Name == "" || r.Slug == "" {
		return ErrNameSlugMissing
	}
	if !SlugPattern.MatchString(r.Slug) {
		return ErrInvalidSlug
	}
	return nil
}

// UpdatePropertyRequest carries the text fields submitted on the edit form.
// A nil pointer means the field was absent; an empty string clears the column.
type UpdatePropertyRequest struct {
	Name               *string
	CustomDomain       *string
	Description        *string
	HeroTitle          *string
	HeroSubtitle       *string
	AboutTitle         *string
	AboutContent       *string
	Address            *string
	Phone              *string
	Email              *string
	WhatsappNumber     *string
	FooterBio          *string
	ConnectTitle       *string
	ConnectDescription *string
	LocationAddress    *string
	SocialLinks        JSONMap
	ThemeConfig        JSONMap

	// Uploaded image URLs; set only when a new file replaced the old one.
	Logo       *string
	HeroImage  *string
	AboutImage *string
}

// Apply copies the present fields onto p.
func (r *UpdatePropertyRequest) Apply(p *Property) {
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		p.Name = strings.TrimSpace(*r.Name)
	}
	set := func(dst **string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			*dst = nil
			return
		}
		s := *v
		*dst = &s
	}
	set(&p.CustomDomain, lowerPtr(r.CustomDomain))
	set(&p.Description, r.Description)
	set(&p.HeroTitle, r.HeroTitle)
	set(&p.HeroSubtitle, r.HeroSubtitle)
	set(&p.AboutTitle, r.AboutTitle)
	set(&p.AboutContent, r.AboutContent)
	set(&p.Address, r.Address)
	set(&p.Phone, r.Phone)
	set(&p.Email, r.Email)
	set(&p.WhatsappNumber, r.WhatsappNumber)
	set(&p.FooterBio, r.FooterBio)
	set(&p.ConnectTitle, r.ConnectTitle)
	set(&p.ConnectDescription, r.ConnectDescription)
	set(&p.LocationAddress, r.LocationAddress)
	if r.SocialLinks != nil {
		p.SocialLinks = r.SocialLinks
	}
	if r.ThemeConfig != nil {
		p.ThemeConfig = r.ThemeConfig
	}
	if r.Logo != nil {
		p.Logo = r.Logo
	}
	if r.HeroImage != nil {
		p.HeroImage = r.HeroImage
	}
	if r.AboutImage != nil {
		p.AboutImage = r.AboutImage
	}
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}

type RoomRequest struct {
	Type        string  `json:"type" form:"type"`
	Description string  `json:"description" form:"description"`
	PriceLKR    float64 `json:"price_lkr" form:"priceLKR"`
	Capacity    int     `json:"capacity" form:"capacity"`
	Features    string  `json:"features" form:"features"`
	Image       *string `json:"-" form:"-"`
}

func (r *RoomRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" || r.PriceLKR <= 0 || r.Capacity <= 0 {
		return ErrRoomFields
	}
	return nil
}

// ParseFeatures splits a comma separated feature list, dropping blanks.
func ParseFeatures(raw string) []string {
	out := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

type AmenityRequest struct {
	Name        string `json:"name" form:"name"`
	Icon        string `json:"icon" form:"icon"`
	Description string `json:"description" form:"description"`
}

type TestimonialRequest struct {
	Content  string `json:"content" form:"content"`
	Author   string `json:"author" form:"author"`
	Location string `json:"location" form:"location"`
}

// OptionalString returns nil for blank input.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// JSONMap is a jsonb column decoded into a generic object.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}
