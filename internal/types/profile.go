package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserProfile is returned by GET /user/profile.
type UserProfile struct {
	ID                int64    `json:"id,omitempty"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Headline          string   `json:"headline,omitempty"`
	CurrentJobTitle   string   `json:"currentJobTitle,omitempty"`
	About             string   `json:"about,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Location          string   `json:"location,omitempty"`
	Website           string   `json:"website,omitempty"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
	ResumeURL         string   `json:"resumeUrl,omitempty"`
}

// ProfileUpdate is the body of PUT /user/profile.
type ProfileUpdate struct {
	Name            string   `json:"name" validate:"required,min=1"`
	Headline        string   `json:"headline"`
	CurrentJobTitle string   `json:"currentJobTitle"`
	About           string   `json:"about" validate:"max=1000"`
	Skills          []string `json:"skills" validate:"dive,required"`
	Location        string   `json:"location"`
	Website         string   `json:"website" validate:"omitempty,url"`
}

// Validate validates the ProfileUpdate using the validator.
func (r *ProfileUpdate) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateFromProfile seeds an update with the editable fields of an existing profile.
func UpdateFromProfile(p *UserProfile) ProfileUpdate {
	if p == nil {
		return ProfileUpdate{}
	}
	skills := make([]string, len(p.Skills))
	copy(skills, p.Skills)
	return ProfileUpdate{
		Name:            p.Name,
		Headline:        p.Headline,
		CurrentJobTitle: p.CurrentJobTitle,
		About:           p.About,
		Skills:          skills,
		Location:        p.Location,
		Website:         p.Website,
	}
}

// ParseSkills splits a comma separated skills field, trimming entries and dropping empty
// ones. Spelling is kept as typed; a case-insensitive repeat keeps its first occurrence.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, skill)
	}
	return out
}
