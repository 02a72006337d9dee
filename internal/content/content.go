// Package content loads portfolio text and per-section motion settings.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/folio/internal/anim"
	"github.com/verte-zerg/folio/internal/reveal"
)

//go:embed default.toml
var defaultTOML []byte

// Section ids, in page order.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionSkills   = "skills"
	SectionProjects = "projects"
	SectionContact  = "contact"
)

// SectionIDs lists every section in page order.
var SectionIDs = []string{SectionHome, SectionAbout, SectionSkills, SectionProjects, SectionContact}

// Portfolio is the full page content.
type Portfolio struct {
	Owner    string   `toml:"owner" yaml:"owner"`
	Resume   string   `toml:"resume" yaml:"resume"`
	Hero     Hero     `toml:"hero" yaml:"hero"`
	About    About    `toml:"about" yaml:"about"`
	Skills   Skills   `toml:"skills" yaml:"skills"`
	Projects Projects `toml:"projects" yaml:"projects"`
	Contact  Contact  `toml:"contact" yaml:"contact"`
}

// Motion holds the entrance settings of one section.
type Motion struct {
	Threshold       float64 `toml:"threshold" yaml:"threshold"`
	DelayChildrenMs int     `toml:"delay-children-ms" yaml:"delay-children-ms"`
	StaggerMs       int     `toml:"stagger-ms" yaml:"stagger-ms"`
	DurationMs      int     `toml:"duration-ms" yaml:"duration-ms"`
	ContainerMs     int     `toml:"container-ms" yaml:"container-ms"`
	OffsetY         float64 `toml:"offset-y" yaml:"offset-y"`
	Ease            string  `toml:"ease" yaml:"ease"`
}

// Hero is the landing section.
type Hero struct {
	Greeting      string `toml:"greeting" yaml:"greeting"`
	Name          string `toml:"name" yaml:"name"`
	Tagline       string `toml:"tagline" yaml:"tagline"`
	TypingSpeedMs int    `toml:"typing-speed-ms" yaml:"typing-speed-ms"`
	TypingDelayMs int    `toml:"typing-delay-ms" yaml:"typing-delay-ms"`
	ScrollHint    string `toml:"scroll-hint" yaml:"scroll-hint"`
	Motion        Motion `toml:"motion" yaml:"motion"`
}

// About is the introduction section.
type About struct {
	Heading string   `toml:"heading" yaml:"heading"`
	Lines   []string `toml:"lines" yaml:"lines"`
	Motion  Motion   `toml:"motion" yaml:"motion"`
}

// Skill is one skill card.
type Skill struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description" yaml:"description"`
	Color       string `toml:"color" yaml:"color"`
}

// Skills is the skill grid section.
type Skills struct {
	Heading  string  `toml:"heading" yaml:"heading"`
	Subtitle string  `toml:"subtitle" yaml:"subtitle"`
	Footer   string  `toml:"footer" yaml:"footer"`
	Items    []Skill `toml:"items" yaml:"items"`
	Motion   Motion  `toml:"motion" yaml:"motion"`
}

// Project is one project card.
type Project struct {
	Title       string   `toml:"title" yaml:"title"`
	Description string   `toml:"description" yaml:"description"`
	Stack       []string `toml:"stack" yaml:"stack"`
	GitHub      string   `toml:"github" yaml:"github"`
	Live        string   `toml:"live" yaml:"live"`
	Accent      string   `toml:"accent" yaml:"accent"`
}

// Projects is the project list section.
type Projects struct {
	Heading  string    `toml:"heading" yaml:"heading"`
	Subtitle string    `toml:"subtitle" yaml:"subtitle"`
	Items    []Project `toml:"items" yaml:"items"`
	Motion   Motion    `toml:"motion" yaml:"motion"`
}

// Contact is the contact form section.
type Contact struct {
	Heading  string `toml:"heading" yaml:"heading"`
	Subtitle string `toml:"subtitle" yaml:"subtitle"`
	LinkedIn string `toml:"linkedin" yaml:"linkedin"`
	Email    string `toml:"email" yaml:"email"`
	Phone    string `toml:"phone" yaml:"phone"`
	Motion   Motion `toml:"motion" yaml:"motion"`
}

// DefaultTOML returns the embedded default content file.
func DefaultTOML() []byte {
	return bytes.Clone(defaultTOML)
}

// Default returns the embedded default content.
func Default() (Portfolio, error) {
	var p Portfolio
	if _, err := toml.Decode(string(defaultTOML), &p); err != nil {
		return Portfolio{}, fmt.Errorf("failed to decode default content: %w", err)
	}
	return p, nil
}

// Load reads content from path on top of the defaults. An empty path returns the defaults.
// Files ending in .yaml or .yml are decoded as YAML, everything else as TOML.
func Load(path string) (Portfolio, error) {
	p, err := Default()
	if err != nil {
		return Portfolio{}, err
	}
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Portfolio{}, fmt.Errorf("failed to read content: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Portfolio{}, fmt.Errorf("failed to decode content: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return Portfolio{}, fmt.Errorf("failed to decode content: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

// Motions returns each section's motion keyed by section id.
func (p Portfolio) Motions() map[string]Motion {
	return map[string]Motion{
		SectionHome:     p.Hero.Motion,
		SectionAbout:    p.About.Motion,
		SectionSkills:   p.Skills.Motion,
		SectionProjects: p.Projects.Motion,
		SectionContact:  p.Contact.Motion,
	}
}

// Validate checks durations and easing names.
func (p Portfolio) Validate() error {
	if p.Hero.TypingSpeedMs < 0 || p.Hero.TypingDelayMs < 0 {
		return fmt.Errorf("hero: typing durations must be >= 0")
	}
	for _, id := range SectionIDs {
		if err := p.Motions()[id].validate(); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
	}
	return nil
}

func (m Motion) validate() error {
	if m.DelayChildrenMs < 0 || m.StaggerMs < 0 || m.DurationMs < 0 || m.ContainerMs < 0 {
		return fmt.Errorf("motion durations must be >= 0")
	}
	if _, err := anim.ParseEasing(m.Ease); err != nil {
		return fmt.Errorf("motion: %w", err)
	}
	return nil
}

// Section builds the reveal settings for a section with the given number of staggered
// children. With reduced set, every delay and duration collapses to zero.
func (m Motion) Section(id string, children int, reduced bool) (reveal.Section, error) {
	if err := m.validate(); err != nil {
		return reveal.Section{}, fmt.Errorf("%s: %w", id, err)
	}
	ease, _ := anim.ParseEasing(m.Ease)
	s := reveal.Section{
		ID:                id,
		Threshold:         m.Threshold,
		BaseDelay:         ms(m.DelayChildrenMs),
		Stagger:           ms(m.StaggerMs),
		ContainerDuration: reveal.DefaultContainerDuration,
		Entrance: reveal.Entrance{
			Offset:   anim.Pose{Opacity: 0, OffsetY: m.OffsetY, Scale: 1},
			Duration: ms(m.DurationMs),
			Easing:   ease,
		},
		Children: children,
	}
	if m.ContainerMs > 0 {
		s.ContainerDuration = ms(m.ContainerMs)
	}
	if reduced {
		s.BaseDelay, s.Stagger, s.Entrance.Duration, s.ContainerDuration = 0, 0, 0, 0
	}
	return s, nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
