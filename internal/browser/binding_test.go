package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nucleus/cmis-core/internal/config"
	"github.com/nucleus/cmis-core/internal/transport"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

var typeDefs = map[string]string{
	"invoice": `{"id": "invoice", "baseId": "cmis:document", "parentId": "cmis:document",
		"propertyDefinitions": {
			"amount": {"id": "amount", "propertyType": "decimal", "cardinality": "single"}
		}}`,
	"cmis:relationship": `{"id": "cmis:relationship", "baseId": "cmis:relationship",
		"propertyDefinitions": {
			"cmis:sourceId": {"id": "cmis:sourceId", "propertyType": "id", "cardinality": "single"},
			"cmis:targetId": {"id": "cmis:targetId", "propertyType": "id", "cardinality": "single"}
		}}`,
	"cmis:document": `{"id": "cmis:document", "baseId": "cmis:document",
		"propertyDefinitions": {
			"cmis:objectId": {"id": "cmis:objectId", "propertyType": "id", "cardinality": "single"},
			"cmis:objectTypeId": {"id": "cmis:objectTypeId", "propertyType": "id", "cardinality": "single"},
			"cmis:name": {"id": "cmis:name", "propertyType": "string", "cardinality": "single"}
		}}`,
}

const documentJSON = `{"succinctProperties": {
	"cmis:objectId": "doc1", "cmis:objectTypeId": "invoice", "cmis:name": "a.txt",
	"amount": 12.5, "pages": 3}}`

const aclJSON = `{"aces": [
	{"principal": {"principalId": "alice"}, "permissions": ["cmis:read"], "isDirect": true}
], "isExact": true}`

// fakeRepository serves one repository "repo1" below /browser.
type fakeRepository struct {
	t   *testing.T
	srv *httptest.Server

	mu        sync.Mutex
	infoCalls int
	typeCalls map[string]int
	skips     []string
	last      url.Values
	lastFiles map[string]string
	lastRange string
	children  int
}

func newFakeRepository(t *testing.T) *fakeRepository {
	t.Helper()
	f := &fakeRepository{t: t, typeCalls: make(map[string]int), children: 5}

	mux := http.NewServeMux()
	mux.HandleFunc("/browser", f.service)
	mux.HandleFunc("/browser/repo1", f.repository)
	mux.HandleFunc("/browser/repo1/root", f.root)
	mux.HandleFunc("/browser/repo1/root/", f.path)
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeRepository) binding(t *testing.T, succinct bool) *Binding {
	t.Helper()
	client := transport.NewClient(&transport.ClientConfig{
		RetryBackoff: time.Millisecond,
		RateLimit:    1000,
		RateBurst:    100,
	})
	b, err := NewBinding(&config.Session{
		BrowserURL:    f.srv.URL + "/browser",
		Succinct:      succinct,
		TypeCacheSize: 50,
	}, WithClient(client))
	if err != nil {
		t.Fatalf("NewBinding() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func (f *fakeRepository) infos() string {
	return fmt.Sprintf(`{"repo1": {"repositoryId": "repo1", "repositoryName": "Main", "rootFolderId": "root-id",
		"repositoryUrl": "%[1]s/browser/repo1", "rootFolderUrl": "%[1]s/browser/repo1/root"}}`, f.srv.URL)
}

func (f *fakeRepository) record(r *http.Request) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := r.URL.Query()
	if r.Method == http.MethodPost {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				f.t.Errorf("ParseMultipartForm() error = %v", err)
			}
			f.lastFiles = make(map[string]string)
			for name, headers := range r.MultipartForm.File {
				file, _ := headers[0].Open()
				data, _ := io.ReadAll(file)
				file.Close()
				f.lastFiles[name] = headers[0].Filename + ":" + headers[0].Header.Get("Content-Type") + ":" + string(data)
			}
			values = url.Values(r.MultipartForm.Value)
		} else {
			if err := r.ParseForm(); err != nil {
				f.t.Errorf("ParseForm() error = %v", err)
			}
			values = r.PostForm
		}
	}
	// Type lookups happen behind the calls under test.
	if values.Get("cmisselector") != "typeDefinition" {
		f.last = values
	}
	return values
}

func (f *fakeRepository) lastValues() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeRepository) service(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	f.mu.Lock()
	f.infoCalls++
	f.mu.Unlock()
	io.WriteString(w, f.infos())
}

func (f *fakeRepository) repository(w http.ResponseWriter, r *http.Request) {
	values := f.record(r)

	if r.Method == http.MethodPost {
		switch values.Get("cmisaction") {
		case "query":
			io.WriteString(w, `{"results": [{"properties": {
				"cmis:objectId": {"id": "cmis:objectId", "type": "id", "cardinality": "single", "value": "doc1"}
			}}], "hasMoreItems": false, "numItems": 1}`)
		case "createDocument", "createDocumentFromSource", "createRelationship", "createPolicy", "createItem":
			io.WriteString(w, documentJSON)
		default:
			writeException(w, http.StatusBadRequest, "invalidArgument", "unexpected action")
		}
		return
	}

	switch values.Get("cmisselector") {
	case "repositoryInfo":
		f.mu.Lock()
		f.infoCalls++
		f.mu.Unlock()
		io.WriteString(w, f.infos())
	case "typeDefinition":
		id := values.Get("typeId")
		f.mu.Lock()
		f.typeCalls[id]++
		f.mu.Unlock()
		def, ok := typeDefs[id]
		if !ok {
			writeException(w, http.StatusNotFound, "objectNotFound", "no type "+id)
			return
		}
		io.WriteString(w, def)
	case "typeChildren":
		fmt.Fprintf(w, `{"types": [%s], "hasMoreItems": false, "numItems": 1}`, typeDefs["invoice"])
	case "checkedOut":
		io.WriteString(w, `{"objects": [`+documentJSON+`], "hasMoreItems": false, "numItems": 1}`)
	case "contentChanges":
		io.WriteString(w, `{"objects": [{"succinctProperties": {"cmis:objectId": "doc1", "cmis:objectTypeId": "invoice"},
			"changeEventInfo": {"changeType": "updated", "changeTime": 1700000000000}}],
			"hasMoreItems": true, "changeLogToken": "tok-2"}`)
	default:
		writeException(w, http.StatusBadRequest, "invalidArgument", "unexpected selector")
	}
}

func (f *fakeRepository) root(w http.ResponseWriter, r *http.Request) {
	values := f.record(r)

	if r.Method == http.MethodPost {
		if r.URL.Query().Get("objectId") == "" {
			writeException(w, http.StatusBadRequest, "invalidArgument", "objectId missing")
			return
		}
		switch values.Get("cmisaction") {
		case "createDocument", "createDocumentFromSource", "createPolicy", "createItem", "update", "move",
			"checkOut", "checkIn", "setContent", "appendContent", "deleteContent":
			io.WriteString(w, documentJSON)
		case "applyACL":
			io.WriteString(w, aclJSON)
		case "deleteTree", "delete", "applyPolicy", "removePolicy", "cancelCheckOut",
			"addObjectToFolder", "removeObjectFromFolder":
			w.WriteHeader(http.StatusOK)
		default:
			writeException(w, http.StatusBadRequest, "invalidArgument", "unexpected action")
		}
		return
	}

	switch values.Get("cmisselector") {
	case "object":
		if values.Get("objectId") != "doc1" {
			writeException(w, http.StatusNotFound, "objectNotFound", "no object "+values.Get("objectId"))
			return
		}
		io.WriteString(w, documentJSON)
	case "children":
		f.writeChildren(w, values)
	case "properties":
		io.WriteString(w, `{"cmis:objectId": "doc1", "cmis:objectTypeId": "invoice", "amount": 1.5}`)
	case "allowableActions":
		io.WriteString(w, `{"canGetProperties": true, "canDelete": false}`)
	case "acl":
		io.WriteString(w, aclJSON)
	case "policies":
		io.WriteString(w, `[`+documentJSON+`]`)
	case "versions":
		io.WriteString(w, `[`+documentJSON+`, null]`)
	case "relationships":
		io.WriteString(w, `{"objects": [{"succinctProperties": {"cmis:objectId": "rel1",
			"cmis:objectTypeId": "cmis:relationship", "cmis:sourceId": "doc1", "cmis:targetId": "doc2"}}],
			"hasMoreItems": false, "numItems": 1}`)
	case "content":
		f.writeContent(w, r)
	default:
		writeException(w, http.StatusBadRequest, "invalidArgument", "unexpected selector")
	}
}

func (f *fakeRepository) writeChildren(w http.ResponseWriter, values url.Values) {
	skip, _ := strconv.Atoi(values.Get("skipCount"))
	size, _ := strconv.Atoi(values.Get("maxItems"))
	if size == 0 {
		size = 100
	}
	f.mu.Lock()
	f.skips = append(f.skips, values.Get("skipCount"))
	total := f.children
	f.mu.Unlock()

	var items []string
	for i := skip; i < total && i < skip+size; i++ {
		items = append(items, fmt.Sprintf(`{"object": {"succinctProperties": {
			"cmis:objectId": "c%d", "cmis:objectTypeId": "cmis:document"}}, "pathSegment": "c%d"}`, i, i))
	}
	fmt.Fprintf(w, `{"objects": [%s], "hasMoreItems": %t, "numItems": %d}`,
		strings.Join(items, ","), skip+size < total, total)
}

func (f *fakeRepository) writeContent(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.lastRange = r.Header.Get("Range")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="a b.txt"`)
	if r.Header.Get("Range") != "" {
		w.WriteHeader(http.StatusPartialContent)
		io.WriteString(w, "ell")
		return
	}
	io.WriteString(w, "hello")
}

func (f *fakeRepository) path(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	if r.URL.EscapedPath() != "/browser/repo1/root/docs/a%20b.txt" {
		writeException(w, http.StatusNotFound, "objectNotFound", "no path "+r.URL.EscapedPath())
		return
	}
	io.WriteString(w, documentJSON)
}

func writeException(w http.ResponseWriter, status int, exception, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"exception": %q, "message": %q}`, exception, message)
}

func mustProperty(t *testing.T, id string, typ cmis.PropertyType, values ...any) *cmis.PropertyData {
	t.Helper()
	p, err := cmis.NewPropertyData(id, typ, values...)
	if err != nil {
		t.Fatalf("NewPropertyData(%s) error = %v", id, err)
	}
	return p
}

// =============================================================================
// TESTS
// =============================================================================

func TestNewBindingValidation(t *testing.T) {
	tests := []struct {
		name    string
		session *config.Session
	}{
		{"nil session", nil},
		{"missing URL", &config.Session{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBinding(tt.session)
			if !errors.Is(err, cmis.ErrInvalidArgument) {
				t.Errorf("NewBinding() error = %v, want invalid argument", err)
			}
		})
	}
}

func TestGetRepositoryInfos(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	infos, err := b.GetRepositoryInfos(ctx)
	if err != nil {
		t.Fatalf("GetRepositoryInfos() error = %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "repo1" || infos[0].RootFolderID != "root-id" {
		t.Fatalf("infos = %+v", infos)
	}

	info, err := b.GetRepositoryInfo(ctx, "repo1")
	if err != nil {
		t.Fatalf("GetRepositoryInfo() error = %v", err)
	}
	if info.Name != "Main" {
		t.Errorf("name = %q", info.Name)
	}
	if got := f.lastValues().Get("cmisselector"); got != "repositoryInfo" {
		t.Errorf("known repository asked with selector %q, want repositoryInfo", got)
	}
}

func TestRepositoryURLCache(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{}); err != nil {
			t.Fatalf("GetObject() error = %v", err)
		}
	}
	f.mu.Lock()
	calls := f.infoCalls
	f.mu.Unlock()
	if calls != 1 {
		t.Errorf("repository infos fetched %d times, want 1", calls)
	}

	b.ClearAllCaches()
	if _, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{}); err != nil {
		t.Fatalf("GetObject() after clear error = %v", err)
	}
	f.mu.Lock()
	calls = f.infoCalls
	f.mu.Unlock()
	if calls != 2 {
		t.Errorf("repository infos fetched %d times after clear, want 2", calls)
	}

	_, err := b.GetObject(ctx, "unknown", "doc1", ObjectOptions{})
	if !errors.Is(err, cmis.ErrObjectNotFound) {
		t.Errorf("unknown repository error = %v, want object not found", err)
	}
}

func TestGetObjectSuccinct(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	obj, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{Filter: "*", IncludeACL: true})
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}

	query := f.lastValues()
	if query.Get("succinct") != "true" || query.Get("filter") != "*" || query.Get("includeACL") != "true" {
		t.Errorf("query = %v", query)
	}
	if query.Has("includeAllowableActions") {
		t.Errorf("unset option sent: %v", query)
	}

	tests := []struct {
		id   string
		want cmis.PropertyType
	}{
		{"cmis:objectId", cmis.PropertyTypeID},
		{"cmis:name", cmis.PropertyTypeString},
		{"amount", cmis.PropertyTypeDecimal},
		{"pages", cmis.PropertyTypeInteger},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p := obj.Properties.Get(tt.id)
			if p == nil {
				t.Fatalf("missing property %s", tt.id)
			}
			if p.Type != tt.want {
				t.Errorf("type = %s, want %s", p.Type, tt.want)
			}
		})
	}
	if amount := obj.Properties.Get("amount").FirstValue().(*big.Float); amount.Cmp(big.NewFloat(12.5)) != 0 {
		t.Errorf("amount = %v", amount)
	}

	if _, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{}); err != nil {
		t.Fatalf("second GetObject() error = %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.typeCalls["invoice"] != 1 || f.typeCalls["cmis:document"] != 1 {
		t.Errorf("type fetches = %v, want one per known type", f.typeCalls)
	}
}

func TestPropertiesAndActions(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	props, err := b.GetProperties(ctx, "repo1", "doc1", "")
	if err != nil {
		t.Fatalf("GetProperties() error = %v", err)
	}
	if p := props.Get("amount"); p == nil || p.Type != cmis.PropertyTypeDecimal {
		t.Errorf("amount = %+v", p)
	}

	actions, err := b.GetAllowableActions(ctx, "repo1", "doc1")
	if err != nil {
		t.Fatalf("GetAllowableActions() error = %v", err)
	}
	if !actions.Has("canGetProperties") || actions.Has("canDelete") {
		t.Errorf("actions = %v", actions.List())
	}
}

func TestClearRepositoryCache(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	if _, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{}); err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}
	if err := b.ClearRepositoryCache(ctx, "repo1"); err != nil {
		t.Fatalf("ClearRepositoryCache() error = %v", err)
	}
	if _, err := b.GetObject(ctx, "repo1", "doc1", ObjectOptions{}); err != nil {
		t.Fatalf("GetObject() after clear error = %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.infoCalls != 2 || f.typeCalls["invoice"] != 2 {
		t.Errorf("info calls = %d, invoice fetches = %d, want 2 and 2", f.infoCalls, f.typeCalls["invoice"])
	}
}

func TestGetObjectErrors(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	_, err := b.GetObject(context.Background(), "repo1", "missing", ObjectOptions{})
	if !errors.Is(err, cmis.ErrObjectNotFound) {
		t.Fatalf("error = %v, want object not found", err)
	}
	var cmisErr *cmis.Error
	if !errors.As(err, &cmisErr) || cmisErr.StatusCode != http.StatusNotFound {
		t.Errorf("error = %#v, want status 404", err)
	}
}

func TestGetObjectByPath(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, false)

	obj, err := b.GetObjectByPath(context.Background(), "repo1", "/docs/a b.txt", ObjectOptions{})
	if err != nil {
		t.Fatalf("GetObjectByPath() error = %v", err)
	}
	if obj.ID() != "doc1" {
		t.Errorf("id = %q", obj.ID())
	}
	if f.lastValues().Has("succinct") {
		t.Error("non-succinct binding sent succinct")
	}
}

func TestChildrenIterator(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	it, err := b.Children(context.Background(), "repo1", "root-id", ListOptions{MaxItems: 2})
	if err != nil {
		t.Fatalf("Children() error = %v", err)
	}
	defer it.Close()

	var ids []string
	for it.Next() {
		ids = append(ids, it.Value().Object.ID())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration error = %v", err)
	}

	if strings.Join(ids, ",") != "c0,c1,c2,c3,c4" {
		t.Errorf("ids = %v", ids)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.Join(f.skips, ",") != "0,2,4" {
		t.Errorf("skipCounts = %v, want 0,2,4", f.skips)
	}
}

func TestGetChildrenPage(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	page, err := b.GetChildren(context.Background(), "repo1", "root-id", ListOptions{MaxItems: 3, SkipCount: 3})
	if err != nil {
		t.Fatalf("GetChildren() error = %v", err)
	}
	if len(page.Objects) != 2 || page.Objects[0].PathSegment != "c3" {
		t.Errorf("page = %+v", page.Objects)
	}
	if cmis.MoreItems(page.HasMoreItems) {
		t.Error("last page reports more items")
	}
}

func TestGetTypeChildrenFillsCache(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	list, err := b.GetTypeChildren(ctx, "repo1", "cmis:document", true, 0, 0)
	if err != nil {
		t.Fatalf("GetTypeChildren() error = %v", err)
	}
	if len(list.Types) != 1 || list.Types[0].ID != "invoice" {
		t.Fatalf("types = %+v", list.Types)
	}

	def, err := b.GetTypeDefinition(ctx, "repo1", "invoice")
	if err != nil {
		t.Fatalf("GetTypeDefinition() error = %v", err)
	}
	if def.PropertyDefinition("amount") == nil {
		t.Error("cached definition lost its properties")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.typeCalls["invoice"] != 0 {
		t.Errorf("invoice fetched %d times, want served from cache", f.typeCalls["invoice"])
	}
}

func TestGetTypeDefinitionNotFound(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	_, err := b.GetTypeDefinition(context.Background(), "repo1", "nope")
	if !errors.Is(err, cmis.ErrTypeNotFound) {
		t.Errorf("error = %v, want type not found", err)
	}
}

func TestCreateDocumentWithContent(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	props := cmis.NewProperties()
	props.Add(mustProperty(t, "cmis:objectTypeId", cmis.PropertyTypeID, "invoice"))
	props.Add(mustProperty(t, "cmis:name", cmis.PropertyTypeString, "a.txt"))

	obj, err := b.CreateDocument(context.Background(), "repo1", props, DocumentOptions{
		CreateOptions:   CreateOptions{Policies: []string{"p1"}},
		FolderID:        "root-id",
		VersioningState: "major",
		Content: &cmis.ContentStream{
			Filename: "a.txt",
			MimeType: "text/plain",
			Length:   5,
			Stream:   strings.NewReader("hello"),
		},
	})
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
	if obj.ID() != "doc1" {
		t.Errorf("id = %q", obj.ID())
	}

	values := f.lastValues()
	want := map[string]string{
		"cmisaction":       "createDocument",
		"propertyId[0]":    "cmis:objectTypeId",
		"propertyValue[0]": "invoice",
		"propertyId[1]":    "cmis:name",
		"propertyValue[1]": "a.txt",
		"versioningState":  "major",
		"policy[0]":        "p1",
		"succinct":         "true",
	}
	for k, v := range want {
		if got := values.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if got := f.lastFiles["content"]; got != "a.txt:text/plain:hello" {
		t.Errorf("content part = %q", got)
	}
}

func TestCreateFolderRequiresParent(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	_, err := b.CreateFolder(context.Background(), "repo1", "", cmis.NewProperties(), CreateOptions{})
	if !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("error = %v, want invalid argument", err)
	}
}

func TestUpdateProperties(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	props := cmis.NewProperties()
	props.Add(mustProperty(t, "tags", cmis.PropertyTypeString, "a", "b"))
	props.Add(mustProperty(t, "note", cmis.PropertyTypeString, ""))

	if _, err := b.UpdateProperties(context.Background(), "repo1", "doc1", "tok-7", props); err != nil {
		t.Fatalf("UpdateProperties() error = %v", err)
	}

	values := f.lastValues()
	want := map[string]string{
		"cmisaction":          "update",
		"propertyId[0]":       "tags",
		"propertyValue[0][0]": "a",
		"propertyValue[0][1]": "b",
		"propertyId[1]":       "note",
		"changeToken":         "tok-7",
	}
	for k, v := range want {
		if got := values.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if !values.Has("propertyValue[1]") {
		t.Error("empty property value dropped")
	}
}

func TestDeleteTreeEmptyBody(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	failed, err := b.DeleteTree(context.Background(), "repo1", "f2", false, "delete", true)
	if err != nil {
		t.Fatalf("DeleteTree() error = %v", err)
	}
	if failed == nil || len(failed.IDs) != 0 {
		t.Errorf("failed = %+v, want empty", failed)
	}

	values := f.lastValues()
	if values.Get("cmisaction") != "deleteTree" || values.Get("unfileObjects") != "delete" ||
		values.Get("continueOnFailure") != "true" || values.Get("allVersions") != "false" {
		t.Errorf("form = %v", values)
	}
}

func TestApplyAcl(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	add := &cmis.Acl{Aces: []*cmis.Ace{{Principal: &cmis.Principal{ID: "alice"}, Permissions: []string{"cmis:read"}}}}
	remove := &cmis.Acl{Aces: []*cmis.Ace{{Principal: &cmis.Principal{ID: "bob"}, Permissions: []string{"cmis:write", "cmis:all"}}}}

	acl, err := b.ApplyAcl(context.Background(), "repo1", "doc1", add, remove, "objectonly")
	if err != nil {
		t.Fatalf("ApplyAcl() error = %v", err)
	}
	if len(acl.Aces) != 1 || acl.Aces[0].PrincipalID() != "alice" || !acl.Aces[0].IsDirect {
		t.Errorf("acl = %+v", acl.Aces)
	}

	values := f.lastValues()
	want := map[string]string{
		"addACEPrincipal[0]":        "alice",
		"addACEPermission[0][0]":    "cmis:read",
		"removeACEPrincipal[0]":     "bob",
		"removeACEPermission[0][0]": "cmis:write",
		"removeACEPermission[0][1]": "cmis:all",
		"ACLPropagation":            "objectonly",
	}
	for k, v := range want {
		if got := values.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestGetAcl(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	acl, err := b.GetAcl(context.Background(), "repo1", "doc1", true)
	if err != nil {
		t.Fatalf("GetAcl() error = %v", err)
	}
	if acl.IsExact == nil || !*acl.IsExact {
		t.Errorf("isExact = %v", acl.IsExact)
	}
	if f.lastValues().Get("onlyBasicPermissions") != "true" {
		t.Errorf("query = %v", f.lastValues())
	}
}

func TestPolicies(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	if err := b.ApplyPolicy(ctx, "repo1", "p1", "doc1"); err != nil {
		t.Fatalf("ApplyPolicy() error = %v", err)
	}
	if values := f.lastValues(); values.Get("cmisaction") != "applyPolicy" || values.Get("policyId") != "p1" {
		t.Errorf("form = %v", values)
	}

	if err := b.RemovePolicy(ctx, "repo1", "", "doc1"); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("RemovePolicy() without id error = %v", err)
	}

	applied, err := b.GetAppliedPolicies(ctx, "repo1", "doc1", "")
	if err != nil {
		t.Fatalf("GetAppliedPolicies() error = %v", err)
	}
	if len(applied) != 1 || applied[0].ObjectTypeID() != "invoice" {
		t.Errorf("applied = %+v", applied)
	}
}

func TestQuery(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	list, err := b.Query(context.Background(), "repo1", "SELECT * FROM cmis:document", QueryOptions{MaxItems: 10})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(list.Objects) != 1 || list.Objects[0].ID() != "doc1" {
		t.Errorf("results = %+v", list.Objects)
	}

	values := f.lastValues()
	if values.Get("q") != "SELECT * FROM cmis:document" || values.Get("maxItems") != "10" {
		t.Errorf("form = %v", values)
	}
	if values.Has("skipCount") || values.Has("succinct") {
		t.Errorf("unexpected parameters in %v", values)
	}

	if _, err := b.Query(context.Background(), "repo1", "", QueryOptions{}); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("empty statement error = %v", err)
	}
}

func TestGetCheckedOutDocs(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	list, err := b.GetCheckedOutDocs(context.Background(), "repo1", "", ListOptions{})
	if err != nil {
		t.Fatalf("GetCheckedOutDocs() error = %v", err)
	}
	if len(list.Objects) != 1 {
		t.Errorf("objects = %d", len(list.Objects))
	}
	if f.lastValues().Get("cmisselector") != "checkedOut" {
		t.Errorf("query = %v", f.lastValues())
	}
}

func assertForm(t *testing.T, values url.Values, want map[string]string) {
	t.Helper()
	for k, v := range want {
		if got := values.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestVersioning(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	pwc, err := b.CheckOut(ctx, "repo1", "doc1")
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if pwc.ID() != "doc1" {
		t.Errorf("pwc id = %q", pwc.ID())
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisaction": "checkOut", "succinct": "true"})

	props := cmis.NewProperties()
	props.Add(mustProperty(t, "cmis:name", cmis.PropertyTypeString, "b.txt"))
	major := true
	if _, err := b.CheckIn(ctx, "repo1", "doc1", props, CheckInOptions{
		Major:   &major,
		Comment: "fix totals",
		Content: &cmis.ContentStream{Filename: "b.txt", MimeType: "text/plain", Stream: strings.NewReader("v2")},
	}); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{
		"cmisaction":       "checkIn",
		"major":            "true",
		"checkinComment":   "fix totals",
		"propertyId[0]":    "cmis:name",
		"propertyValue[0]": "b.txt",
	})
	f.mu.Lock()
	content := f.lastFiles["content"]
	f.mu.Unlock()
	if content != "b.txt:text/plain:v2" {
		t.Errorf("content part = %q", content)
	}

	if err := b.CancelCheckOut(ctx, "repo1", "doc1"); err != nil {
		t.Fatalf("CancelCheckOut() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisaction": "cancelCheckOut"})

	if _, err := b.CheckOut(ctx, "repo1", ""); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("CheckOut() without id error = %v", err)
	}
}

func TestVersionReads(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	versions, err := b.GetAllVersions(ctx, "repo1", "doc1", "", true)
	if err != nil {
		t.Fatalf("GetAllVersions() error = %v", err)
	}
	if len(versions) != 1 || versions[0].ID() != "doc1" {
		t.Errorf("versions = %+v", versions)
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisselector": "versions", "includeAllowableActions": "true"})

	latest, err := b.GetObjectOfLatestVersion(ctx, "repo1", "doc1", true, ObjectOptions{})
	if err != nil {
		t.Fatalf("GetObjectOfLatestVersion() error = %v", err)
	}
	if latest.ObjectTypeID() != "invoice" {
		t.Errorf("type = %q", latest.ObjectTypeID())
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisselector": "object", "returnVersion": "latestmajor"})

	props, err := b.GetPropertiesOfLatestVersion(ctx, "repo1", "doc1", false, "")
	if err != nil {
		t.Fatalf("GetPropertiesOfLatestVersion() error = %v", err)
	}
	if p := props.Get("amount"); p == nil || p.Type != cmis.PropertyTypeDecimal {
		t.Errorf("amount = %+v", p)
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisselector": "properties", "returnVersion": "latest"})
}

func TestGetContentChanges(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	list, err := b.GetContentChanges(context.Background(), "repo1", "tok-1", ChangeOptions{IncludeProperties: true, MaxItems: 5})
	if err != nil {
		t.Fatalf("GetContentChanges() error = %v", err)
	}
	if list.ChangeLogToken != "tok-2" || !cmis.MoreItems(list.HasMoreItems) {
		t.Errorf("token = %q, hasMoreItems = %v", list.ChangeLogToken, list.HasMoreItems)
	}
	if len(list.Objects) != 1 {
		t.Fatalf("objects = %+v", list.Objects)
	}
	event := list.Objects[0].ChangeEventInfo
	if event == nil || event.ChangeType != cmis.ChangeTypeUpdated ||
		event.ChangeTime == nil || !event.ChangeTime.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("change event = %+v", event)
	}

	assertForm(t, f.lastValues(), map[string]string{
		"cmisselector":      "contentChanges",
		"changeLogToken":    "tok-1",
		"includeProperties": "true",
		"maxItems":          "5",
		"succinct":          "true",
	})
}

func TestGetObjectRelationships(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)

	list, err := b.GetObjectRelationships(context.Background(), "repo1", "doc1", RelationshipOptions{
		Direction:                   "source",
		IncludeSubRelationshipTypes: true,
	})
	if err != nil {
		t.Fatalf("GetObjectRelationships() error = %v", err)
	}
	if len(list.Objects) != 1 || list.Objects[0].ID() != "rel1" {
		t.Fatalf("objects = %+v", list.Objects)
	}
	if p := list.Objects[0].Properties.Get("cmis:targetId"); p == nil || p.Type != cmis.PropertyTypeID {
		t.Errorf("cmis:targetId = %+v", p)
	}
	assertForm(t, f.lastValues(), map[string]string{
		"cmisselector":                "relationships",
		"relationshipDirection":       "source",
		"includeSubRelationshipTypes": "true",
	})
}

func TestMoveObject(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	if _, err := b.MoveObject(ctx, "repo1", "doc1", "f2", "root-id"); err != nil {
		t.Fatalf("MoveObject() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{
		"cmisaction":     "move",
		"targetFolderId": "f2",
		"sourceFolderId": "root-id",
		"succinct":       "true",
	})

	tests := []struct {
		name             string
		objectID, target string
	}{
		{"no object", "", "f2"},
		{"no target", "doc1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.MoveObject(ctx, "repo1", tt.objectID, tt.target, ""); !errors.Is(err, cmis.ErrInvalidArgument) {
				t.Errorf("MoveObject() error = %v, want invalid argument", err)
			}
		})
	}
}

func TestCreateObjectKinds(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	props := cmis.NewProperties()
	props.Add(mustProperty(t, "cmis:objectTypeId", cmis.PropertyTypeID, "invoice"))

	tests := []struct {
		name   string
		create func() (*cmis.ObjectData, error)
		want   map[string]string
	}{
		{
			name: "relationship",
			create: func() (*cmis.ObjectData, error) {
				return b.CreateRelationship(ctx, "repo1", props, CreateOptions{})
			},
			want: map[string]string{"cmisaction": "createRelationship"},
		},
		{
			name: "unfiled policy",
			create: func() (*cmis.ObjectData, error) {
				return b.CreatePolicy(ctx, "repo1", "", props, CreateOptions{Policies: []string{"p1"}})
			},
			want: map[string]string{"cmisaction": "createPolicy", "policy[0]": "p1"},
		},
		{
			name: "filed item",
			create: func() (*cmis.ObjectData, error) {
				return b.CreateItem(ctx, "repo1", "root-id", props, CreateOptions{})
			},
			want: map[string]string{"cmisaction": "createItem"},
		},
		{
			name: "document from source",
			create: func() (*cmis.ObjectData, error) {
				return b.CreateDocumentFromSource(ctx, "repo1", "doc1", props, DocumentOptions{FolderID: "root-id", VersioningState: "minor"})
			},
			want: map[string]string{"cmisaction": "createDocumentFromSource", "sourceId": "doc1", "versioningState": "minor"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := tt.create()
			if err != nil {
				t.Fatalf("create error = %v", err)
			}
			if obj.ID() != "doc1" {
				t.Errorf("id = %q", obj.ID())
			}
			values := f.lastValues()
			assertForm(t, values, tt.want)
			assertForm(t, values, map[string]string{"propertyId[0]": "cmis:objectTypeId", "succinct": "true"})
		})
	}

	if _, err := b.CreateDocumentFromSource(ctx, "repo1", "", props, DocumentOptions{}); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("CreateDocumentFromSource() without source error = %v", err)
	}
}

func TestContentStreamChanges(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	content := func() *cmis.ContentStream {
		return &cmis.ContentStream{Filename: "a.txt", MimeType: "text/plain", Stream: strings.NewReader("chunk")}
	}

	if _, err := b.SetContentStream(ctx, "repo1", "doc1", "tok-1", true, content()); err != nil {
		t.Fatalf("SetContentStream() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{
		"cmisaction":    "setContent",
		"overwriteFlag": "true",
		"changeToken":   "tok-1",
		"succinct":      "true",
	})

	if _, err := b.AppendContentStream(ctx, "repo1", "doc1", "", true, content()); err != nil {
		t.Fatalf("AppendContentStream() error = %v", err)
	}
	values := f.lastValues()
	assertForm(t, values, map[string]string{"cmisaction": "appendContent", "isLastChunk": "true"})
	if values.Has("changeToken") {
		t.Error("empty change token sent")
	}
	f.mu.Lock()
	part := f.lastFiles["content"]
	f.mu.Unlock()
	if part != "a.txt:text/plain:chunk" {
		t.Errorf("content part = %q", part)
	}

	if _, err := b.DeleteContentStream(ctx, "repo1", "doc1", "tok-2"); err != nil {
		t.Fatalf("DeleteContentStream() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{"cmisaction": "deleteContent", "changeToken": "tok-2"})

	if _, err := b.SetContentStream(ctx, "repo1", "doc1", "", false, nil); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("SetContentStream() without content error = %v", err)
	}
	if _, err := b.DeleteContentStream(ctx, "repo1", "", ""); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("DeleteContentStream() without id error = %v", err)
	}
}

func TestGetContentStream(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	tests := []struct {
		name           string
		offset, length int64
		wantRange      string
		wantBody       string
	}{
		{"whole", 0, 0, "", "hello"},
		{"range", 1, 3, "bytes=1-3", "ell"},
		{"tail", 2, 0, "bytes=2-", "ell"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := b.GetContentStream(ctx, "repo1", "doc1", "", tt.offset, tt.length)
			if err != nil {
				t.Fatalf("GetContentStream() error = %v", err)
			}
			data, _ := io.ReadAll(cs.Stream)
			if string(data) != tt.wantBody || cs.Length != int64(len(tt.wantBody)) {
				t.Errorf("body = %q (length %d), want %q", data, cs.Length, tt.wantBody)
			}
			if cs.Filename != "a b.txt" || cs.MimeType != "text/plain" {
				t.Errorf("filename = %q, mime type = %q", cs.Filename, cs.MimeType)
			}
			f.mu.Lock()
			got := f.lastRange
			f.mu.Unlock()
			if got != tt.wantRange {
				t.Errorf("Range = %q, want %q", got, tt.wantRange)
			}
		})
	}
}

func TestMultiFiling(t *testing.T) {
	f := newFakeRepository(t)
	b := f.binding(t, true)
	ctx := context.Background()

	if err := b.AddObjectToFolder(ctx, "repo1", "doc1", "f2", true); err != nil {
		t.Fatalf("AddObjectToFolder() error = %v", err)
	}
	assertForm(t, f.lastValues(), map[string]string{
		"cmisaction":  "addObjectToFolder",
		"folderId":    "f2",
		"allVersions": "true",
	})

	if err := b.RemoveObjectFromFolder(ctx, "repo1", "doc1", ""); err != nil {
		t.Fatalf("RemoveObjectFromFolder() error = %v", err)
	}
	values := f.lastValues()
	if values.Get("cmisaction") != "removeObjectFromFolder" || values.Has("folderId") {
		t.Errorf("form = %v", values)
	}

	if err := b.AddObjectToFolder(ctx, "repo1", "doc1", "", false); !errors.Is(err, cmis.ErrInvalidArgument) {
		t.Errorf("AddObjectToFolder() without folder error = %v", err)
	}
}
