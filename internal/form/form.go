// Package form builds the POST bodies of browser binding actions.
package form

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// Control parameter names.
const (
	ControlCmisAction          = "cmisaction"
	ControlSuccinct            = "succinct"
	ControlPropertyID          = "propertyId"
	ControlPropertyValue       = "propertyValue"
	ControlPolicy              = "policy"
	ControlAddACEPrincipal     = "addACEPrincipal"
	ControlAddACEPermission    = "addACEPermission"
	ControlRemoveACEPrincipal  = "removeACEPrincipal"
	ControlRemoveACEPermission = "removeACEPermission"
	ControlObjectID            = "objectId"
	ControlAllVersions         = "allVersions"
	ControlContinueOnFailure   = "continueOnFailure"
	ControlUnfileObjects       = "unfileObjects"
	ControlACLPropagation      = "ACLPropagation"
	ControlStatement           = "q"
	ControlChangeToken         = "changeToken"
	ControlIsLastChunk         = "isLastChunk"
)

// Content types produced by Encode.
const (
	ContentTypeURLEncoded = "application/x-www-form-urlencoded;charset=utf-8"
	ContentTypeFormData   = "multipart/form-data"
)

const octetStream = "application/octet-stream"

type param struct {
	name  string
	value string
}

// Form collects the parameters of one action in insertion order. Setting a
// parameter twice replaces the earlier value in place.
type Form struct {
	params  []param
	index   map[string]int
	content *cmis.ContentStream
}

// NewForm starts a form for the given cmisaction.
func NewForm(action string) *Form {
	f := &Form{index: make(map[string]int)}
	return f.set(ControlCmisAction, action)
}

// Add sets a parameter. Nil values and empty strings are skipped; bools
// become true/false and other values are rendered like property values.
func (f *Form) Add(name string, value any) *Form {
	if name == "" || value == nil {
		return f
	}
	var text string
	switch v := value.(type) {
	case string:
		if v == "" {
			return f
		}
		text = v
	case bool:
		text = strconv.FormatBool(v)
	case *bool:
		if v == nil {
			return f
		}
		text = strconv.FormatBool(*v)
	default:
		text = convert.EncodeValue(v)
	}
	return f.set(name, text)
}

func (f *Form) set(name, text string) *Form {
	if i, ok := f.index[name]; ok {
		f.params[i].value = text
		return f
	}
	f.index[name] = len(f.params)
	f.params = append(f.params, param{name: name, value: text})
	return f
}

// AddProperties writes propertyId[i] with propertyValue[i] for single
// values or propertyValue[i][j] for several. Nil entries do not consume an
// index.
func (f *Form) AddProperties(props *cmis.Properties) *Form {
	index := 0
	for _, p := range props.List() {
		if p == nil {
			continue
		}
		idx := "[" + strconv.Itoa(index) + "]"
		f.set(ControlPropertyID+idx, p.ID)

		switch len(p.Values) {
		case 0:
		case 1:
			f.set(ControlPropertyValue+idx, convert.EncodeValue(p.Values[0]))
		default:
			for j, v := range p.Values {
				f.set(ControlPropertyValue+idx+"["+strconv.Itoa(j)+"]", convert.EncodeValue(v))
			}
		}
		index++
	}
	return f
}

// AddPolicies writes policy[i], skipping empty ids.
func (f *Form) AddPolicies(policies []string) *Form {
	index := 0
	for _, id := range policies {
		if id == "" {
			continue
		}
		f.Add(ControlPolicy+"["+strconv.Itoa(index)+"]", id)
		index++
	}
	return f
}

// AddAddAces writes the ACEs to add.
func (f *Form) AddAddAces(acl *cmis.Acl) *Form {
	return f.addAces(acl, ControlAddACEPrincipal, ControlAddACEPermission)
}

// AddRemoveAces writes the ACEs to remove.
func (f *Form) AddRemoveAces(acl *cmis.Acl) *Form {
	return f.addAces(acl, ControlRemoveACEPrincipal, ControlRemoveACEPermission)
}

func (f *Form) addAces(acl *cmis.Acl, principalControl, permissionControl string) *Form {
	if acl == nil {
		return f
	}
	index := 0
	for _, ace := range acl.Aces {
		if ace == nil || ace.PrincipalID() == "" || len(ace.Permissions) == 0 {
			continue
		}
		idx := "[" + strconv.Itoa(index) + "]"
		f.Add(principalControl+idx, ace.PrincipalID())
		perm := 0
		for _, p := range ace.Permissions {
			if p == "" {
				continue
			}
			f.Add(permissionControl+idx+"["+strconv.Itoa(perm)+"]", p)
			perm++
		}
		index++
	}
	return f
}

// AddSuccinct asks for succinct properties in the response.
func (f *Form) AddSuccinct(succinct bool) *Form {
	if succinct {
		f.Add(ControlSuccinct, "true")
	}
	return f
}

// SetContent attaches a content stream, switching Encode to multipart.
func (f *Form) SetContent(content *cmis.ContentStream) *Form {
	f.content = content
	return f
}

// Get returns the value of a parameter.
func (f *Form) Get(name string) (string, bool) {
	i, ok := f.index[name]
	if !ok {
		return "", false
	}
	return f.params[i].value, true
}

// Len returns the number of parameters.
func (f *Form) Len() int {
	return len(f.params)
}

// Encode returns the content type and body of the request. Without content
// the parameters are url-encoded; otherwise they become text parts of a
// multipart body followed by the content part, which is streamed.
func (f *Form) Encode() (string, io.Reader, error) {
	if f.content == nil || f.content.Stream == nil {
		return ContentTypeURLEncoded, strings.NewReader(f.urlEncoded()), nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary("cmis" + strings.ReplaceAll(uuid.NewString(), "-", "")); err != nil {
		return "", nil, err
	}

	for _, p := range f.params {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": p.name}))
		h.Set("Content-Type", "text/plain; charset=utf-8")
		part, err := w.CreatePart(h)
		if err != nil {
			return "", nil, err
		}
		if _, err := io.WriteString(part, p.value); err != nil {
			return "", nil, err
		}
	}

	filename := f.content.Filename
	if filename == "" {
		filename = "content"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "content",
		"filename": filename,
	}))
	h.Set("Content-Type", mediaType(f.content.MimeType))
	h.Set("Content-Transfer-Encoding", "binary")
	if _, err := w.CreatePart(h); err != nil {
		return "", nil, err
	}
	head := append([]byte(nil), buf.Bytes()...)

	buf.Reset()
	if err := w.Close(); err != nil {
		return "", nil, err
	}
	tail := append([]byte(nil), buf.Bytes()...)

	body := io.MultiReader(bytes.NewReader(head), f.content.Stream, bytes.NewReader(tail))
	return w.FormDataContentType(), body, nil
}

func (f *Form) urlEncoded() string {
	var sb strings.Builder
	for i, p := range f.params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

// mediaType returns mt when it parses as a media type.
func mediaType(mt string) string {
	if mt == "" || strings.ContainsAny(mt, "\r\n") {
		return octetStream
	}
	if _, _, err := mime.ParseMediaType(mt); err != nil || !strings.Contains(mt, "/") {
		return octetStream
	}
	return mt
}
