package openapi

import (
	"context"
	"fmt"

	"github.com/Gobd/genspec"
	"github.com/getkin/kin-openapi/openapi3"
)

// session is shared by every context of one builder chain. It keeps the
// first error. Later calls still edit entities, but no output is produced
// once an error is kept.
type session struct {
	catalog *Catalog
	err     error
}

func (s *session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *session) value(field string, a any) (genspec.Value, bool) {
	v, err := genspec.ValueOf(a)
	if err != nil {
		s.fail(fmt.Errorf("%s: %w", field, err))
		return nil, false
	}
	return v, true
}

// appendTo appends v to the list stored in e under field.
func appendTo(e *genspec.Entity, field string, v genspec.Value) {
	l, _ := e.Get(field).(genspec.List)
	e.Set(field, append(l, v))
}

// Builder is the root context of a document. Child contexts return to their
// parent with End.
type Builder struct {
	s     *session
	doc   *genspec.Entity
	info  *genspec.Entity
	paths *genspec.Entity
}

// Option configures a Builder at creation. Each option is shorthand for the
// chained method of the same name.
type Option func(*Builder)

// WithDescription sets info.description.
func WithDescription(desc string) Option {
	return func(b *Builder) { b.Description(desc) }
}

// WithTermsOfService sets info.termsOfService.
func WithTermsOfService(url string) Option {
	return func(b *Builder) { b.TermsOfService(url) }
}

// New starts a document with the given title and version, using the
// [DefaultCatalog].
func New(title, version string, opts ...Option) *Builder {
	return NewWithCatalog(DefaultCatalog(), title, version, opts...)
}

// NewWithCatalog is like [New] but declares entities from c.
func NewWithCatalog(c *Catalog, title, version string, opts ...Option) *Builder {
	b := &Builder{s: &session{catalog: c}}
	b.info = c.Info.New().
		Set("title", genspec.String(title)).
		Set("version", genspec.String(version))
	b.paths = c.Paths.New()
	b.doc = c.NewDocument().
		Set("info", b.info).
		Set("paths", b.paths)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Title sets info.title.
func (b *Builder) Title(title string) *Builder {
	b.info.Set("title", genspec.String(title))
	return b
}

// Version sets info.version, the version of the described API.
func (b *Builder) Version(version string) *Builder {
	b.info.Set("version", genspec.String(version))
	return b
}

// Description sets info.description.
func (b *Builder) Description(desc string) *Builder {
	b.info.Set("description", genspec.String(desc))
	return b
}

// TermsOfService sets info.termsOfService.
func (b *Builder) TermsOfService(url string) *Builder {
	b.info.Set("termsOfService", genspec.String(url))
	return b
}

// Contact sets info.contact. Empty arguments leave existing values unchanged.
func (b *Builder) Contact(name, url, email string) *Builder {
	contact, ok := b.info.Get("contact").(*genspec.Entity)
	if !ok {
		contact = b.s.catalog.Contact.New()
		b.info.Set("contact", contact)
	}
	setNonEmpty(contact, "name", name)
	setNonEmpty(contact, "url", url)
	setNonEmpty(contact, "email", email)
	return b
}

// License sets info.license. An empty url leaves an existing url unchanged.
func (b *Builder) License(name, url string) *Builder {
	license, ok := b.info.Get("license").(*genspec.Entity)
	if !ok {
		license = b.s.catalog.License.New()
		b.info.Set("license", license)
	}
	license.Set("name", genspec.String(name))
	setNonEmpty(license, "url", url)
	return b
}

func setNonEmpty(e *genspec.Entity, field, v string) {
	if v != "" {
		e.Set(field, genspec.String(v))
	}
}

// Server adds an entry to servers.
func (b *Builder) Server(url string) *ServerBuilder {
	server := b.s.catalog.Server.New().Set("url", genspec.String(url))
	appendTo(b.doc, "servers", server)
	return &ServerBuilder{parent: b, server: server, s: b.s}
}

// Tag adds an entry to tags. An empty description is omitted.
func (b *Builder) Tag(name, description string) *Builder {
	tag := b.s.catalog.Tag.New().Set("name", genspec.String(name))
	setNonEmpty(tag, "description", description)
	appendTo(b.doc, "tags", tag)
	return b
}

// ExternalDocs sets externalDocs.
func (b *Builder) ExternalDocs(url, description string) *Builder {
	b.doc.Set("externalDocs", newExternalDocs(b.s.catalog, url, description))
	return b
}

func newExternalDocs(c *Catalog, url, description string) *genspec.Entity {
	docs := c.ExternalDocumentation.New().Set("url", genspec.String(url))
	setNonEmpty(docs, "description", description)
	return docs
}

// Security adds a security requirement naming a scheme and its scopes.
func (b *Builder) Security(scheme string, scopes ...string) *Builder {
	appendTo(b.doc, "security", newSecurityRequirement(b.s.catalog, scheme, scopes))
	return b
}

func newSecurityRequirement(c *Catalog, scheme string, scopes []string) *genspec.Entity {
	return c.SecurityRequirement.New().Set(scheme, genspec.Strings(scopes...))
}

// Extension sets a document-level extension field; name must start with "x-".
func (b *Builder) Extension(name string, value any) *Builder {
	if v, ok := b.s.value(name, value); ok {
		b.doc.Set(name, v)
	}
	return b
}

// Path returns the context of the path item at path, creating it if needed.
func (b *Builder) Path(path string, opts ...PathOption) *PathBuilder {
	item, ok := b.paths.Get(path).(*genspec.Entity)
	if !ok {
		item = b.s.catalog.PathItem.New()
		b.paths.Set(path, item)
	}
	pb := &PathBuilder{parent: b, item: item, s: b.s}
	for _, opt := range opts {
		opt(pb)
	}
	return pb
}

// Err returns the first error raised while building, if any.
func (b *Builder) Err() error { return b.s.err }

// Entity returns the root document entity.
func (b *Builder) Entity() *genspec.Entity { return b.doc }

// Document validates the document and returns its plain form.
func (b *Builder) Document() (map[string]any, error) {
	if b.s.err != nil {
		return nil, b.s.err
	}
	return b.doc.PlainData()
}

// YAML returns the document encoded as YAML.
func (b *Builder) YAML() ([]byte, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}
	return EncodeYAML(doc)
}

// JSON returns the document encoded as indented JSON.
func (b *Builder) JSON() ([]byte, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}
	return EncodeJSON(doc)
}

// Spec returns the document loaded and validated by kin-openapi.
func (b *Builder) Spec(ctx context.Context) (*openapi3.T, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, err
	}
	return Load(ctx, doc)
}

// ServerBuilder is the context of one server entry.
type ServerBuilder struct {
	parent *Builder
	server *genspec.Entity
	s      *session
}

// Description sets the server description.
func (sb *ServerBuilder) Description(desc string) *ServerBuilder {
	sb.server.Set("description", genspec.String(desc))
	return sb
}

// Variable declares a substitution variable used as {name} in the server url.
func (sb *ServerBuilder) Variable(name, defaultValue string, enum ...string) *ServerBuilder {
	vars, ok := sb.server.Get("variables").(genspec.Map)
	if !ok {
		vars = genspec.Map{}
		sb.server.Set("variables", vars)
	}
	v := sb.s.catalog.ServerVariable.New().Set("default", genspec.String(defaultValue))
	if len(enum) > 0 {
		v.Set("enum", genspec.Strings(enum...))
	}
	vars[name] = v
	return sb
}

// End returns to the document.
func (sb *ServerBuilder) End() *Builder { return sb.parent }
