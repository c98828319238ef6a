package prompt

import (
	"fmt"
	"strings"
)

const defaultRecipientRole = "Hiring Manager"

// BuildChatPrompt scopes a visitor's message to the profile.
func BuildChatPrompt(p *Profile, userMessage string) string {
	owner := p.OwnerName()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a professional assistant embedded in %s's portfolio.\n", p.Assistant, p.Owner.FullName)
	fmt.Fprintf(&sb, "Your sole purpose is to help visitors explore %s's skills, projects, achievements, and publications.\n\n", owner)

	sb.WriteString("IMPORTANT TOPIC CONSTRAINTS:\n")
	fmt.Fprintf(&sb, "1. Only respond to questions related to %s's portfolio, work, or professional background.\n", owner)
	sb.WriteString("2. Do not answer unrelated questions such as:\n")
	sb.WriteString("   - Academic subjects\n")
	sb.WriteString("   - General knowledge or definitions\n")
	sb.WriteString("   - Personal advice or current events\n")
	fmt.Fprintf(&sb, "   - Tutorials not based on %s's work\n\n", owner)
	sb.WriteString("- Give a structured answer. Keep it clean, professional, and easy to read without markdown.\n")
	fmt.Fprintf(&sb, "If asked something outside scope, politely redirect the user to ask about %s's projects, skills, or achievements.\n\n", owner)

	sb.WriteString("COMMUNICATION STYLE:\n")
	sb.WriteString("- Use formal, confident, and conversational tone\n")
	sb.WriteString("- Avoid markdown formatting (no bold or headings)\n")
	sb.WriteString("- Keep responses under 120 words\n")
	sb.WriteString("- Use line breaks for readability\n")
	sb.WriteString("- Never repeat full context, summarize only relevant highlights\n")
	sb.WriteString("- Include GitHub, LinkedIn, or email only if relevant to the query\n\n")

	sb.WriteString("PORTFOLIO CONTEXT:\n")
	fmt.Fprintf(&sb, "Skills:\n%s\n\n", bulletSkills(p.Skills))
	fmt.Fprintf(&sb, "Projects:\n%s\n\n", bulletProjects(p.Projects))
	fmt.Fprintf(&sb, "Achievements:\n%s\n\n", strings.Join(p.Achievements, ", "))
	fmt.Fprintf(&sb, "Publications:\n%s\n\n", bulletPublications(p.Publications))
	fmt.Fprintf(&sb, "Contact:\n%s\n\n", bulletContact(p.Contact))
	fmt.Fprintf(&sb, "User Query:\n%s", userMessage)
	return sb.String()
}

// OutreachRequest carries the per-recipient variables of an outreach email.
// A non-empty RoleDescription selects the hiring variant.
type OutreachRequest struct {
	RecipientName   string
	RecipientRole   string
	Company         string
	RoleDescription string
}

// Hiring reports whether the request targets an open role.
func (r OutreachRequest) Hiring() bool {
	return strings.TrimSpace(r.RoleDescription) != ""
}

// BuildOutreachPrompt asks for a short first-person email from the owner.
func BuildOutreachPrompt(p *Profile, req OutreachRequest) string {
	role := strings.TrimSpace(req.RecipientRole)
	if role == "" {
		role = defaultRecipientRole
	}
	owner := p.OwnerName()

	var sb strings.Builder
	if req.Hiring() {
		fmt.Fprintf(&sb, "Write a short, warm email from %s to %s, a %s at %s, who is hiring for: %q.\n\n",
			p.Owner.FullName, req.RecipientName, role, req.Company, strings.TrimSpace(req.RoleDescription))
	} else {
		fmt.Fprintf(&sb, "Write a short, warm email from %s to %s, a %s at %s, who is not currently hiring.\n\n",
			p.Owner.FullName, req.RecipientName, role, req.Company)
	}

	fmt.Fprintf(&sb, "%s's background:\n", owner)
	fmt.Fprintf(&sb, "- Skills: %s\n", inlineSkills(p.Skills))
	fmt.Fprintf(&sb, "- Projects: %s\n", inlineProjects(p.Projects))
	fmt.Fprintf(&sb, "- Achievements: %s\n", strings.Join(p.Achievements, ", "))
	fmt.Fprintf(&sb, "- Publications: %s\n\n", inlinePublications(p.Publications))

	sb.WriteString("The email should:\n")
	if req.Hiring() {
		fmt.Fprintf(&sb, "- Be in first person, from %s\n", owner)
		sb.WriteString("- Mention the company name naturally\n")
		sb.WriteString("- Compare his background to the role\n")
		sb.WriteString("- Highlight relevant skills and projects\n")
		sb.WriteString("- Use a conversational, respectful tone (no \"Dear\" or formal phrasing)\n")
		sb.WriteString("- Be under 200 words, in 3 short paragraphs\n")
	} else {
		fmt.Fprintf(&sb, "- Be in first person, from %s\n", owner)
		sb.WriteString("- Express admiration for the company's work\n")
		sb.WriteString("- Invite future connection and express interest in being considered for future opportunities\n")
		fmt.Fprintf(&sb, "- Show how %s's background aligns with their long-term vision\n", owner)
		sb.WriteString("- Use a conversational, respectful tone (no \"Dear\" or formal phrasing)\n")
		sb.WriteString("- Be under 150 words, in 2 short paragraphs\n")
	}
	sb.WriteString("- Return only the subject line (starting with \"Subject:\") followed by a newline, then the email body\n")
	sb.WriteString("- No headings, markdown, or multiple versions\n")
	return sb.String()
}

func bulletSkills(groups []SkillGroup) string {
	lines := make([]string, len(groups))
	for i, g := range groups {
		lines[i] = fmt.Sprintf("- %s: %s", g.Category, strings.Join(g.Items, ", "))
	}
	return strings.Join(lines, "\n")
}

func bulletProjects(projects []Project) string {
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = fmt.Sprintf("- %s: %s", p.Name, p.Summary)
	}
	return strings.Join(lines, "\n")
}

func bulletPublications(pubs []Publication) string {
	lines := make([]string, len(pubs))
	for i, p := range pubs {
		lines[i] = fmt.Sprintf("- %s (%s)", p.Title, p.Source)
	}
	return strings.Join(lines, "\n")
}

func bulletContact(links []ContactLink) string {
	lines := make([]string, len(links))
	for i, l := range links {
		lines[i] = fmt.Sprintf("- %s: %s", l.Label, l.Value)
	}
	return strings.Join(lines, "\n")
}

func inlineSkills(groups []SkillGroup) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s: %s", g.Category, strings.Join(g.Items, ", "))
	}
	return strings.Join(parts, "; ")
}

func inlineProjects(projects []Project) string {
	parts := make([]string, len(projects))
	for i, p := range projects {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Summary)
	}
	return strings.Join(parts, "; ")
}

func inlinePublications(pubs []Publication) string {
	parts := make([]string, len(pubs))
	for i, p := range pubs {
		parts[i] = fmt.Sprintf("%s (%s)", p.Title, p.Source)
	}
	return strings.Join(parts, "; ")
}
