package models

import "strings"

// Banner is the singleton home page document (home/banner).
type Banner struct {
	Video               string `json:"video" bson:"video" yaml:"video"`
	Poster              string `json:"poster" bson:"poster" yaml:"poster"`
	Title               string `json:"title" bson:"title" yaml:"title"`
	Subtitle            string `json:"subtitle" bson:"subtitle" yaml:"subtitle"`
	TitleSlide          string `json:"titleSlide" bson:"titleSlide" yaml:"titleSlide"`
	SubtitleSlide       string `json:"subtitleSlide" bson:"subtitleSlide" yaml:"subtitleSlide"`
	TitleOutstanding    string `json:"titleOutstanding" bson:"titleOutstanding" yaml:"titleOutstanding"`
	SubtitleOutstanding string `json:"subtitleOutstanding" bson:"subtitleOutstanding" yaml:"subtitleOutstanding"`

	// LegacySubTitle is the old spelling written by earlier versions of the console.
	LegacySubTitle string `json:"-" bson:"subTitle,omitempty" yaml:"-"`
}

// BannerLegacyFields are removed from the stored banner on every write.
var BannerLegacyFields = []string{"subTitle"}

// Normalize folds legacy fields into their canonical names.
func (b *Banner) Normalize() {
	if b.Subtitle == "" {
		b.Subtitle = b.LegacySubTitle
	}
	b.LegacySubTitle = ""
}

// About is the singleton about page document (about/data).
type About struct {
	Title       string   `json:"title" bson:"title" yaml:"title"`
	Description string   `json:"description" bson:"description" yaml:"description"`
	Content     string   `json:"content" bson:"content" yaml:"content"`
	Mission     string   `json:"mission" bson:"mission" yaml:"mission"`
	Vision      string   `json:"vision" bson:"vision" yaml:"vision"`
	Values      []string `json:"values" bson:"values" yaml:"values"`
	Image       string   `json:"image,omitempty" bson:"image" yaml:"image"`
}

// VisibleValues drops blank entries.
func (a About) VisibleValues() []string {
	var out []string
	for _, v := range a.Values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// Contact is the singleton contact page document (contact/data).
type Contact struct {
	Title        string `json:"title" bson:"title" yaml:"title"`
	Description  string `json:"description" bson:"description" yaml:"description"`
	Address      string `json:"address" bson:"address" yaml:"address"`
	Phone        string `json:"phone" bson:"phone" yaml:"phone"`
	Email        string `json:"email" bson:"email" yaml:"email"`
	WorkingHours string `json:"workingHours" bson:"workingHours" yaml:"workingHours"`
	MapEmbedURL  string `json:"mapEmbedUrl,omitempty" bson:"mapEmbedUrl" yaml:"mapEmbedUrl"`
}

// Footer is the singleton footer document (footer/data).
type Footer struct {
	Description string `json:"description" bson:"description" yaml:"description"`
	FacebookURL string `json:"facebookUrl" bson:"facebookUrl" yaml:"facebookUrl"`
	TiktokURL   string `json:"tiktokUrl" bson:"tiktokUrl" yaml:"tiktokUrl"`
	Address     string `json:"address" bson:"address" yaml:"address"`
	Hotline     string `json:"hotline" bson:"hotline" yaml:"hotline"`
	Email       string `json:"email" bson:"email" yaml:"email"`
}
