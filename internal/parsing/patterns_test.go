package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindEmails(t *testing.T) {
	assert.Equal(t, []string{"jane.doe@example.com", "j@x.io"}, FindEmails("Contact: jane.doe@example.com or j@x.io"))
	assert.Empty(t, FindEmails("no address here @ all"))
	assert.True(t, HasEmail("reach me at dev+cv@mail.co.uk"))
}

func TestFindPhones(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"international", "Phone: +1 (555) 123-4567", true},
		{"dotted", "555.123.4567", true},
		{"too few digits", "call 555-1234", false},
		{"year range", "2019 - 2021", false},
		{"no digits", "phone available on request", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPhone(tt.text))
		})
	}
}

func TestFindPhones_FollowedByYearRange(t *testing.T) {
	assert.Equal(t, []string{"555-123-4567"}, FindPhones("555-123-4567 2019 - 2022"))
	assert.Equal(t, []string{"+1 555 123 4567"}, FindPhones("+1 555 123 4567 2019 - 2022"))
	assert.True(t, HasPhone("Jane Doe 555-123-4567 2019 - 2022"))
}

func TestFindURLs(t *testing.T) {
	got := FindURLs("Portfolio: https://jane.dev. Code at (http://github.com/jane)")
	assert.Equal(t, []string{"https://jane.dev", "http://github.com/jane"}, got)
}

func TestHasLocationKeyword(t *testing.T) {
	assert.True(t, HasLocationKeyword("221B Baker Street, London"))
	assert.True(t, HasLocationKeyword("City: Pune"))
	assert.False(t, HasLocationKeyword("statement of work"))
}

func TestHasProfessionalLink(t *testing.T) {
	assert.True(t, HasProfessionalLink("linkedin.com/in/janedoe"))
	assert.True(t, HasProfessionalLink("https://GitHub.com/jane"))
	assert.False(t, HasProfessionalLink("linkedin.com/company/acme"))
}

func TestHasDatePattern(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Jan 2020", true},
		{"September 2018", true},
		{"03/2019", true},
		{"12-2021", true},
		{"2018 - 2022", true},
		{"2019-present", true},
		{"currently open to offers", false},
		{"Present", true},
		{"version 1.2", false},
		{"13/2020", false},
		{"Led Marketing 2024 campaign", false},
		{"Served 2000 requests", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HasDatePattern(tt.text))
		})
	}
}

func TestFindDateMentions(t *testing.T) {
	got := FindDateMentions("Acme Jan 2019 - Present; Globex 2015 - 2018")
	assert.Equal(t, []string{"Jan 2019", "2015", "2018"}, got)
	assert.Empty(t, FindDateMentions("no dates"))
}

func TestFindDateMentions_BareYears(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"counts next to a range", "Acme 2019 - 2021\nServed 2000 requests\nLed Marketing 2024 campaign", []string{"2019", "2021"}},
		{"since", "Engineer at Acme since 2018, 3000 users", []string{"2018"}},
		{"line end after comma", "B.S. Computer Science, 2016\nHandled 1999 tickets", []string{"2016"}},
		{"line end after bar", "Acme | 2019", []string{"2019"}},
		{"count only", "Processed 2010 orders daily", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindDateMentions(tt.text))
		})
	}
}

func TestCountQuantifiedAchievements(t *testing.T) {
	text := "Cut costs by 30% saving $2.5M, made builds 3x faster and served 10,000 users"
	assert.Equal(t, 4, CountQuantifiedAchievements(text))
	assert.Equal(t, 0, CountQuantifiedAchievements("worked on many things"))
}

func TestCountActionVerbs(t *testing.T) {
	assert.Equal(t, 3, CountActionVerbs("Led a team. Developed APIs. Led migrations."))
	assert.Equal(t, 0, CountActionVerbs("skilled and enrolled"))
}

func TestCountJobTitles(t *testing.T) {
	assert.Equal(t, 2, CountJobTitles("Software Engineer, then Senior Engineer and Engineering Manager"))
	assert.Equal(t, 2, CountJobTitles("developers and designers"))
}

func TestCountIndustryKeywords(t *testing.T) {
	assert.Equal(t, 5, CountIndustryKeywords("Cloud APIs, data pipelines and cross-functional testing"))
	assert.Equal(t, 1, CountIndustryKeywords("full-stack"))
}

func TestEducationKeywords(t *testing.T) {
	assert.True(t, HasDegree("Bachelor of Science"))
	assert.True(t, HasDegree("M.Sc. Physics"))
	assert.True(t, HasDegree("B.S. in CS"))
	assert.False(t, HasDegree("contact me."))
	assert.False(t, HasDegree("masterful"))

	assert.True(t, HasCertification("AWS Certified Developer"))
	assert.True(t, HasCertification("PMP"))
	assert.False(t, HasCertification("uncertain"))

	assert.True(t, HasInstitution("Stanford University"))
	assert.False(t, HasInstitution("schooling"))
}
