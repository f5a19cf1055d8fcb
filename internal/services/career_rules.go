package services

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FallbackRule appends at most one canned suggestion when any of its terms
// appears in the matching field and the requested task has an entry in
// Suggestions. Rules are evaluated independently; several may fire.
type FallbackRule struct {
	Name          string                `yaml:"name"`
	InterestTerms []string              `yaml:"interest_terms"`
	SkillTerms    []string              `yaml:"skill_terms"`
	Suggestions   map[string]CareerItem `yaml:"suggestions"`
}

// FallbackTieBreak supplies the single suggestion used when no rule fired.
type FallbackTieBreak struct {
	Marketing CareerItem `yaml:"marketing"`
	Design    CareerItem `yaml:"design"`
	Default   CareerItem `yaml:"default"`
}

type FallbackRuleset struct {
	Rules    []FallbackRule   `yaml:"rules"`
	TieBreak FallbackTieBreak `yaml:"tie_break"`
}

// LoadFallbackRuleset reads a YAML ruleset override from path.
func LoadFallbackRuleset(path string) (*FallbackRuleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback ruleset: %w", err)
	}
	var rs FallbackRuleset
	if err := yaml.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("parse fallback ruleset: %w", err)
	}
	if len(rs.Rules) == 0 {
		return nil, fmt.Errorf("fallback ruleset %q contains no rules", path)
	}
	if rs.TieBreak.Default.Title == "" {
		return nil, fmt.Errorf("fallback ruleset %q is missing a default tie-break suggestion", path)
	}
	return &rs, nil
}

// DefaultFallbackRuleset returns the built-in ruleset.
func DefaultFallbackRuleset() *FallbackRuleset {
	return &FallbackRuleset{
		Rules: []FallbackRule{
			{
				Name:          "technology",
				InterestTerms: []string{"tech", "software"},
				SkillTerms:    []string{"programming", "coding", "python", "machine"},
				Suggestions: map[string]CareerItem{
					"explore": {
						Title:       "Software Developer",
						Description: "Build applications and solve complex problems through code.",
						Why:         "Matches your technical interests and programming skills.",
						Steps:       []string{"Master a programming language", "Build a portfolio of projects", "Contribute to open source", "Apply for junior developer positions"},
					},
					"skills": {
						Title:       "DevOps Engineer",
						Description: "Bridge development and operations through automation and tooling.",
						Why:         "Combines technical skills with system administration.",
						Steps:       []string{"Learn cloud platforms (AWS/Azure)", "Master containerization", "Study CI/CD pipelines", "Get cloud certifications"},
					},
				},
			},
			{
				Name:          "design",
				InterestTerms: []string{"design", "creative", "branding"},
				SkillTerms:    []string{"design", "ux", "ui"},
				Suggestions: map[string]CareerItem{
					"explore": {
						Title:       "UX/UI Designer",
						Description: "Create intuitive and beautiful user interfaces.",
						Why:         "Aligns with your creative skills and interest in design.",
						Steps:       []string{"Learn design principles", "Master design tools", "Build a portfolio", "Take on freelance projects"},
					},
					"industry": {
						Title:       "Product Designer",
						Description: "Shape product experiences from concept to implementation.",
						Why:         "Combines creativity with strategic thinking.",
						Steps:       []string{"Study user research", "Learn prototyping tools", "Understand product metrics", "Network with product teams"},
					},
				},
			},
			{
				Name:          "business",
				InterestTerms: []string{"business", "data", "analytics"},
				SkillTerms:    []string{"analysis", "sql", "data"},
				Suggestions: map[string]CareerItem{
					"explore": {
						Title:       "Business Analyst",
						Description: "Bridge business needs with technical solutions.",
						Why:         "Matches your analytical skills and business interest.",
						Steps:       []string{"Learn SQL and data analysis basics", "Practice with a real dataset", "Document business insights"},
					},
					"opportunities": {
						Title:       "Business Analyst",
						Description: "Bridge business needs with technical solutions.",
						Why:         "Matches your analytical skills and business interest.",
						Steps:       []string{"Learn SQL and data analysis basics", "Practice with a real dataset", "Document business insights"},
					},
				},
			},
			{
				Name:          "management",
				InterestTerms: []string{"project", "management", "leadership"},
				SkillTerms:    []string{"management", "leadership"},
				Suggestions: map[string]CareerItem{
					"explore": {
						Title:       "Project Coordinator",
						Description: "Support project delivery and coordination.",
						Why:         "Leverages organizational and leadership skills.",
						Steps:       []string{"Join a project team as support", "Learn one PM tool", "Document and reflect on outcomes"},
					},
					"skills": {
						Title:       "Junior Project Manager",
						Description: "Manage small projects and stakeholder communication.",
						Why:         "Builds on leadership and organizational experience.",
						Steps:       []string{"Take a short PM fundamentals course", "Assist on project planning", "Lead a small deliverable"},
					},
				},
			},
		},
		TieBreak: FallbackTieBreak{
			Marketing: CareerItem{
				Title:       "Digital Marketing Specialist",
				Description: "Drive online growth using analytics and content.",
				Why:         "Combines creative & analytical skills for measurable impact.",
				Steps:       []string{"Take a short digital marketing course", "Learn basic analytics (Google Analytics)", "Run one small campaign"},
			},
			Design: CareerItem{
				Title:       "UX/UI Designer",
				Description: "Create intuitive and beautiful user interfaces.",
				Why:         "Aligns with creative and visual skills.",
				Steps:       []string{"Learn design fundamentals", "Build a mini-portfolio", "Seek feedback from peers"},
			},
			Default: CareerItem{
				Title:       "Project Coordinator",
				Description: "Support project delivery and team coordination.",
				Why:         "Gives practical experience across functions.",
				Steps:       []string{"Learn a PM tool (Trello/Asana)", "Assist on a small project", "Document outcomes"},
			},
		},
	}
}
