package notification

import (
	"fmt"
	"regexp"
	"strings"

	"sla-srv/internal/model"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// SelectTemplate picks the template for one (type, channel) pair from
// candidates: an active template of companyID first, then the active global
// default, then any active global template.
func SelectTemplate(candidates []model.NotificationTemplate, companyID string) (model.NotificationTemplate, bool) {
	var company, globalDefault, global *model.NotificationTemplate
	for i := range candidates {
		t := &candidates[i]
		if !t.IsActive {
			continue
		}
		switch {
		case !model.IsGlobalCompany(companyID) && t.CompanyID == companyID:
			if company == nil || (t.IsDefault && !company.IsDefault) {
				company = t
			}
		case model.IsGlobalCompany(t.CompanyID):
			if t.IsDefault && globalDefault == nil {
				globalDefault = t
			}
			if global == nil {
				global = t
			}
		}
	}

	for _, t := range []*model.NotificationTemplate{company, globalDefault, global} {
		if t != nil {
			return *t, true
		}
	}
	return model.NotificationTemplate{}, false
}

// Vars builds the placeholder values of n: its data plus title and message.
func Vars(n model.Notification) map[string]string {
	vars := make(map[string]string, len(n.Data)+2)
	for k, v := range n.Data {
		if v == nil {
			continue
		}
		vars[k] = fmt.Sprint(v)
	}
	vars["title"] = n.Title
	vars["message"] = n.Message
	return vars
}

// RenderString substitutes {{name}} placeholders. Unknown names are kept.
func RenderString(s string, vars map[string]string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// Render renders t with vars. Empty template parts fall back to the raw
// title and message; the subject falls back to the rendered title.
func Render(t model.NotificationTemplate, vars map[string]string) Rendered {
	r := Rendered{
		Title:   vars["title"],
		Message: vars["message"],
	}
	if t.Title != "" {
		r.Title = RenderString(t.Title, vars)
	}
	if t.Message != "" {
		r.Message = RenderString(t.Message, vars)
	}
	r.Subject = r.Title
	if t.Subject != "" {
		r.Subject = RenderString(t.Subject, vars)
	}
	return r
}

// Raw is the rendering used when no template matches.
func Raw(n model.Notification) Rendered {
	return Rendered{Subject: n.Title, Title: n.Title, Message: n.Message}
}
