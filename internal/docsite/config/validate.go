package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"text/template"

	"github.com/go-playground/validator/v10"

	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
	"github.com/microsoft/retina-site/internal/docsite/highlight"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks required fields, enums and cross-field rules. Every problem
// is reported as a *siteerrors.ConfigError; several are joined together.
func Validate(d *SiteDescriptor, plugins PluginResolver) error {
	var issues []error

	if err := validatorInstance().Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return siteerrors.NewConfigError("", "invalid descriptor", err)
		}
		for _, fe := range verrs {
			issues = append(issues, siteerrors.NewConfigError(fieldPath(fe.Namespace()), describe(fe), fe))
		}
	}

	issues = append(issues, validateLocales(d)...)
	issues = append(issues, validateNavbar(d.ThemeConfig.Navbar)...)
	issues = append(issues, validateFooter(d.ThemeConfig.Footer)...)
	issues = append(issues, validatePrism(d.ThemeConfig.Prism)...)
	issues = append(issues, validatePlugins(d, plugins)...)

	return errors.Join(issues...)
}

// fieldPath strips the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be an absolute URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "endswith":
		return fmt.Sprintf("must end with %q", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func validateLocales(d *SiteDescriptor) []error {
	for _, l := range d.I18n.Locales {
		if l == d.I18n.DefaultLocale {
			return nil
		}
	}
	return []error{siteerrors.NewConfigError("i18n.defaultLocale",
		fmt.Sprintf("%q is not listed in i18n.locales", d.I18n.DefaultLocale), nil)}
}

func validateNavbar(nb Navbar) []error {
	var issues []error
	for i, item := range nb.Items {
		field := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		switch item.Type {
		case NavDefault:
			if (item.To == "") == (item.Href == "") {
				issues = append(issues, siteerrors.NewConfigError(field, "exactly one of to or href is required", nil))
			}
		case NavDocSidebar:
			if item.SidebarID == "" {
				issues = append(issues, siteerrors.NewConfigError(field+".sidebarId", "is required for docSidebar items", nil))
			}
		case NavDoc:
			if item.DocID == "" {
				issues = append(issues, siteerrors.NewConfigError(field+".docId", "is required for doc items", nil))
			}
		}
		if item.ActiveBaseRegex != "" {
			if _, err := regexp.Compile(item.ActiveBaseRegex); err != nil {
				issues = append(issues, siteerrors.NewConfigError(field+".activeBaseRegex", "does not compile", err))
			}
		}
	}
	return issues
}

func validateFooter(f Footer) []error {
	var issues []error
	for i, group := range f.Links {
		for j, item := range group.Items {
			if (item.To == "") == (item.Href == "") {
				issues = append(issues, siteerrors.NewConfigError(
					fmt.Sprintf("themeConfig.footer.links[%d].items[%d]", i, j),
					"exactly one of to or href is required", nil))
			}
		}
	}
	if f.Copyright != "" {
		if _, err := template.New("copyright").Parse(f.Copyright); err != nil {
			issues = append(issues, siteerrors.NewConfigError("themeConfig.footer.copyright", "is not a valid template", err))
		}
	}
	return issues
}

func validatePrism(p PrismConfig) []error {
	var issues []error
	check := func(field string, ref ThemeRef) {
		if _, ok := ref.Sheet(); !ok {
			issues = append(issues, siteerrors.NewConfigError(field,
				fmt.Sprintf("unknown theme %q (built-ins: %s)", ref.Name, strings.Join(highlight.BuiltinNames(), ", ")), nil))
		}
	}
	check("themeConfig.prism.theme", p.Theme)
	check("themeConfig.prism.darkTheme", p.DarkTheme)
	return issues
}

func validatePlugins(d *SiteDescriptor, plugins PluginResolver) []error {
	var issues []error
	if _, err := d.Classic(); err != nil {
		issues = append(issues, siteerrors.NewConfigError("presets", "invalid classic preset options", err))
	}
	if plugins == nil {
		return issues
	}
	resolve := func(kind string, list []PluginDescriptor) {
		for i, p := range list {
			if p.Name == "" {
				continue
			}
			if err := plugins.ResolvePlugin(p.Name, p.Options); err != nil {
				issues = append(issues, siteerrors.NewConfigError(fmt.Sprintf("%s[%d]", kind, i),
					fmt.Sprintf("cannot resolve %q", p.Name), err))
			}
		}
	}
	resolve("plugins", d.Plugins)
	resolve("presets", d.Presets)
	return issues
}

// CopyrightText expands the footer copyright template for the given year.
// An unparsable template is returned verbatim.
func (f Footer) CopyrightText(year int) string {
	if f.Copyright == "" {
		return ""
	}
	tmpl, err := template.New("copyright").Parse(f.Copyright)
	if err != nil {
		return f.Copyright
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ Year int }{year}); err != nil {
		return f.Copyright
	}
	return sb.String()
}
