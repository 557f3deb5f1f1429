package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MediaFormat is one rendition of an uploaded file.
type MediaFormat struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Media is an uploaded file with optional renditions.
type Media struct {
	ID              int                    `json:"id"`
	DocumentID      string                 `json:"documentId"`
	Name            string                 `json:"name"`
	URL             string                 `json:"url"`
	AlternativeText string                 `json:"alternativeText"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Formats         map[string]MediaFormat `json:"formats"`
}

// Best returns the URL of the first available format in order, falling back to the original.
func (m *Media) Best(formats ...string) string {
	if m == nil {
		return ""
	}
	for _, name := range formats {
		if f, ok := m.Formats[name]; ok && f.URL != "" {
			return f.URL
		}
	}
	return m.URL
}

// MediaRefs decodes a media field given as a URL string, a single object or a list.
type MediaRefs []Media

func (r *MediaRefs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = nil
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*r = nil
			return nil
		}
		*r = MediaRefs{{URL: s}}
	case '{':
		var m Media
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		*r = MediaRefs{m}
	case '[':
		var list []Media
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*r = list
	default:
		return fmt.Errorf("cms: unsupported media value %s", string(b))
	}
	return nil
}

// FlexString accepts a JSON string or number.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*s = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// LocalizationRef points at the same record in another locale.
type LocalizationRef struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Locale     string `json:"locale"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
	Name       string `json:"name"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Article struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Locale        string            `json:"locale"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
	PublishedAt   string            `json:"publishedAt"`
	Image         *Media            `json:"image"`
	Categories    []Category        `json:"categories"`
	Localizations []LocalizationRef `json:"localizations"`
}

type Role struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// Member is a lab member profile.
type Member struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Biography     string            `json:"biography"`
	Email         string            `json:"email"`
	PhoneNumber   FlexString        `json:"phone_number"`
	UserName      string            `json:"user_name"`
	Slug          string            `json:"slug"`
	Locale        string            `json:"locale"`
	Image         *Media            `json:"image"`
	Roles         []Role            `json:"members_roles"`
	Publications  []Publication     `json:"publications"`
	Localizations []LocalizationRef `json:"localizations"`
}

// FullName joins first and last names.
func (m Member) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

// Initials returns up to two upper-case initials.
func (m Member) Initials() string {
	var b strings.Builder
	for _, part := range []string{m.FirstName, m.LastName} {
		for _, r := range strings.TrimSpace(part) {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}

type Localisation struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Event struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	URL           string            `json:"url"`
	Locale        string            `json:"locale"`
	CreatedAt     string            `json:"createdAt"`
	PublishedAt   string            `json:"publishedAt"`
	Localisation  *Localisation     `json:"localisation"`
	Localizations []LocalizationRef `json:"localizations"`
}

type Project struct {
	ID             int               `json:"id"`
	DocumentID     string            `json:"documentId"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Content        string            `json:"content"`
	Locale         string            `json:"locale"`
	ProjectManager *Member           `json:"project_manager"`
	ResearchTeam   *Team             `json:"research_team"`
	Localizations  []LocalizationRef `json:"localizations"`
}

// Team is a research team.
type Team struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Locale        string            `json:"locale"`
	TeamLeader    *Member           `json:"team_leader"`
	Members       []Member          `json:"members"`
	Projects      []Project         `json:"projects"`
	Localizations []LocalizationRef `json:"localizations"`
}

type RecruitmentType struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

type Recruitment struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Locale        string            `json:"locale"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
	PublishedAt   string            `json:"publishedAt"`
	Types         []RecruitmentType `json:"recruitments_types"`
	Localizations []LocalizationRef `json:"localizations"`
}

type PublicationType struct {
	Name string `json:"name"`
}

type Publisher struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	Volume                string `json:"volume"`
	AdditionalInformation string `json:"additionalInformation"`
	Date                  string `json:"date"`
}

type Attachments struct {
	ID      int       `json:"id"`
	URL     string    `json:"associatedURL"`
	DOI     string    `json:"associatedDoi"`
	Scholar string    `json:"associatedScholar"`
	PDF     MediaRefs `json:"associatedPDF"`
}

type ExternalAuthor struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type Publication struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Type        *PublicationType `json:"type"`
	Members     []Member         `json:"members"`
	NonMembers  []ExternalAuthor `json:"non_members"`
	Publisher   *Publisher       `json:"publisher"`
	Attachments *Attachments     `json:"attachements"`
}

// TypeName returns the publication type or "".
func (p Publication) TypeName() string {
	if p.Type == nil {
		return ""
	}
	return strings.TrimSpace(p.Type.Name)
}

// Date returns the publisher date or "".
func (p Publication) Date() string {
	if p.Publisher == nil {
		return ""
	}
	return strings.TrimSpace(p.Publisher.Date)
}

type Button struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	URL    string `json:"URL"`
	Target string `json:"target"`
}

type HomePage struct {
	ID            int               `json:"id"`
	DocumentID    string            `json:"documentId"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Locale        string            `json:"locale"`
	Background    []Media           `json:"background"`
	FirstButton   *Button           `json:"firstButton"`
	SecondButton  *Button           `json:"secondButton"`
	Localizations []LocalizationRef `json:"localizations"`
}

type PartnerLogo struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Company    string `json:"company"`
	Image      *Media `json:"image"`
}

type Partner struct {
	ID   int          `json:"id"`
	Link string       `json:"link"`
	Logo *PartnerLogo `json:"logo"`
}

// PartnerList is the single type holding the partners slider.
type PartnerList struct {
	ID         int       `json:"id"`
	DocumentID string    `json:"documentId"`
	Partners   []Partner `json:"partner"`
}

type Video struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type YouTubeChannel struct {
	ID         int     `json:"id"`
	ChannelURL string  `json:"channel_url"`
	Videos     []Video `json:"videos"`
}

type DirectorWord struct {
	ID       int     `json:"id"`
	Word     string  `json:"word"`
	Locale   string  `json:"locale"`
	Director *Member `json:"director"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	MetaImage       *Media `json:"metaImage"`
}

// Global carries site-wide defaults.
type Global struct {
	ID          int    `json:"id"`
	SiteName    string `json:"siteName"`
	Description string `json:"siteDescription"`
	SEO         *SEO   `json:"seo"`
}
