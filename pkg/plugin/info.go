package plugin

import "strings"

// Info is the immutable descriptor of a plugin's identity, metadata,
// dependencies, and flags. Once built via NewInfoBuilder, its fields
// never change.
type Info struct {
	id           string
	abiVersion   uint32
	provides     []string
	priority     int
	name         string
	version      string
	licenseID    string
	licenseText  string
	licenseURL   string
	iconName     string
	summary      string
	description  string
	category     string
	authors      []string
	website      string
	dependencies []string
	internal     bool
	loadOnQuery  bool
	bindGlobal   bool
}

// ID returns the plugin's unique identifier, recommended form "<app>/<name>".
func (i *Info) ID() string { return i.id }

// NormalizedID folds every character outside [A-Za-z0-9-] to '-'.
func (i *Info) NormalizedID() string { return NormalizeID(i.id) }

// ABIVersion returns the 32-bit ABI version. The high byte is
// framework-owned; the low 24 bits belong to the embedding application.
func (i *Info) ABIVersion() uint32 { return i.abiVersion }

// Provides returns the ids or id=version aliases the plugin declares.
// The Manager's dependency resolver matches Info IDs only and does not
// consult them.
func (i *Info) Provides() []string { return append([]string(nil), i.provides...) }

// Priority returns the plugin's declared priority. The Manager does not
// consult it: lookups return plugins sharing an identifier in index
// order regardless of priority.
func (i *Info) Priority() int { return i.priority }

// Name returns the plugin's human-readable name.
func (i *Info) Name() string { return i.name }

// Version returns the plugin's version string.
func (i *Info) Version() string { return i.version }

// LicenseID returns the SPDX-style license identifier, if any.
func (i *Info) LicenseID() string { return i.licenseID }

// LicenseText returns the full license text, if embedded.
func (i *Info) LicenseText() string { return i.licenseText }

// LicenseURL returns a URL to the license text, if any.
func (i *Info) LicenseURL() string { return i.licenseURL }

// IconName returns the icon identifier, if any.
func (i *Info) IconName() string { return i.iconName }

// Summary returns a one-line description.
func (i *Info) Summary() string { return i.summary }

// Description returns a long-form description.
func (i *Info) Description() string { return i.description }

// Category returns the plugin's category.
func (i *Info) Category() string { return i.category }

// Authors returns the plugin's listed authors.
func (i *Info) Authors() []string { return append([]string(nil), i.authors...) }

// Website returns the plugin's homepage, if any.
func (i *Info) Website() string { return i.website }

// Dependencies returns the raw dependency expression strings (see
// ParseDependency for the grammar).
func (i *Info) Dependencies() []string { return append([]string(nil), i.dependencies...) }

// Internal reports whether this plugin extends the framework itself
// rather than being part of the user-visible catalog.
func (i *Info) Internal() bool { return i.internal }

// LoadOnQuery reports whether the manager must load this plugin
// immediately after a successful query.
func (i *Info) LoadOnQuery() bool { return i.loadOnQuery }

// BindGlobal is an opaque hint to native loaders about symbol binding.
func (i *Info) BindGlobal() bool { return i.bindGlobal }

// NormalizeID folds every character outside [A-Za-z0-9-] to '-'.
func NormalizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// InfoBuilder constructs an Info. The zero value is ready to use.
type InfoBuilder struct {
	info Info
}

// NewInfoBuilder starts a builder for the plugin identified by id.
func NewInfoBuilder(id string) *InfoBuilder {
	b := &InfoBuilder{}
	b.info.id = id
	return b
}

// ABIVersion sets the ABI version.
func (b *InfoBuilder) ABIVersion(v uint32) *InfoBuilder { b.info.abiVersion = v; return b }

// Provides sets the aliases this plugin declares.
func (b *InfoBuilder) Provides(p ...string) *InfoBuilder { b.info.provides = p; return b }

// Priority sets the priority.
func (b *InfoBuilder) Priority(p int) *InfoBuilder { b.info.priority = p; return b }

// Name sets the human-readable name.
func (b *InfoBuilder) Name(n string) *InfoBuilder { b.info.name = n; return b }

// Version sets the version string.
func (b *InfoBuilder) Version(v string) *InfoBuilder { b.info.version = v; return b }

// LicenseID sets the SPDX-style license identifier.
func (b *InfoBuilder) LicenseID(v string) *InfoBuilder { b.info.licenseID = v; return b }

// LicenseText sets the embedded license text.
func (b *InfoBuilder) LicenseText(v string) *InfoBuilder { b.info.licenseText = v; return b }

// LicenseURL sets the license URL.
func (b *InfoBuilder) LicenseURL(v string) *InfoBuilder { b.info.licenseURL = v; return b }

// IconName sets the icon identifier.
func (b *InfoBuilder) IconName(v string) *InfoBuilder { b.info.iconName = v; return b }

// Summary sets the one-line description.
func (b *InfoBuilder) Summary(v string) *InfoBuilder { b.info.summary = v; return b }

// Description sets the long-form description.
func (b *InfoBuilder) Description(v string) *InfoBuilder { b.info.description = v; return b }

// Category sets the category.
func (b *InfoBuilder) Category(v string) *InfoBuilder { b.info.category = v; return b }

// Authors sets the listed authors.
func (b *InfoBuilder) Authors(a ...string) *InfoBuilder { b.info.authors = a; return b }

// Website sets the homepage URL.
func (b *InfoBuilder) Website(v string) *InfoBuilder { b.info.website = v; return b }

// Dependencies sets the raw dependency expression strings.
func (b *InfoBuilder) Dependencies(d ...string) *InfoBuilder { b.info.dependencies = d; return b }

// Internal marks this plugin as framework-internal.
func (b *InfoBuilder) Internal(v bool) *InfoBuilder { b.info.internal = v; return b }

// LoadOnQuery requests immediate load after a successful query.
func (b *InfoBuilder) LoadOnQuery(v bool) *InfoBuilder { b.info.loadOnQuery = v; return b }

// BindGlobal sets the native-loader symbol-binding hint.
func (b *InfoBuilder) BindGlobal(v bool) *InfoBuilder { b.info.bindGlobal = v; return b }

// Build returns the constructed, immutable Info.
func (b *InfoBuilder) Build() *Info {
	info := b.info
	info.provides = append([]string(nil), b.info.provides...)
	info.authors = append([]string(nil), b.info.authors...)
	info.dependencies = append([]string(nil), b.info.dependencies...)
	return &info
}
