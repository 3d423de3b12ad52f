// Package main implements cmis-browse, a small browser binding client for
// looking around a CMIS repository.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/nucleus/cmis-core/internal/browser"
	"github.com/nucleus/cmis-core/internal/config"
	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

const usage = `usage: cmis-browse [flags] <command> [args]

commands:
  repos                  list repositories
  type <typeId>          show a type definition
  types [typeId]         show the type hierarchy
  children <folderId>    list a folder
  object <objectId>      show an object
  path <path>            show an object by path
  acl <objectId>         show the ACL of an object
  versions <objectId>    list the versions of a document
  changes [token]        read the change log
  query <statement>      run a query

flags:
`

func main() {
	configPath := flag.String("config", "", "YAML session file (environment variables override it)")
	repo := flag.String("repo", "", "repository id (default: first repository)")
	depth := flag.Int("depth", -1, "type hierarchy depth")
	pageSize := flag.Int("page-size", 100, "children page size")
	metrics := flag.Bool("metrics", false, "print client metrics to stderr on exit")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	session, err := loadSession(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.SetupLogger(session)

	binding, err := browser.NewBinding(session, browser.WithLogger(logger))
	if err != nil {
		log.Fatalf("create binding: %v", err)
	}
	defer binding.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		binding:  binding,
		repo:     *repo,
		depth:    *depth,
		pageSize: *pageSize,
		out:      os.Stdout,
	}
	runErr := c.run(ctx, flag.Arg(0), flag.Args()[1:])
	if *metrics {
		if err := writeMetrics(os.Stderr, prometheus.DefaultGatherer); err != nil {
			log.Printf("write metrics: %v", err)
		}
	}
	if runErr != nil {
		log.Fatalf("%s: %v", flag.Arg(0), runErr)
	}
}

// writeMetrics prints the cmis_* metric families in the text exposition
// format.
func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "cmis_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func loadSession(path string) (*config.Session, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

type cli struct {
	binding  *browser.Binding
	repo     string
	depth    int
	pageSize int
	out      io.Writer
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	if command == "repos" {
		return c.repositories(ctx)
	}

	repo, err := c.repository(ctx)
	if err != nil {
		return err
	}

	switch command {
	case "type":
		if len(args) != 1 {
			return fmt.Errorf("expected a type id")
		}
		td, err := c.binding.GetTypeDefinition(ctx, repo, args[0])
		if err != nil {
			return err
		}
		c.printType(td)
	case "types":
		typeID := ""
		if len(args) > 0 {
			typeID = args[0]
		}
		tree, err := c.binding.GetTypeDescendants(ctx, repo, typeID, c.depth, false)
		if err != nil {
			return err
		}
		c.printTypeTree(tree, 0)
	case "children":
		if len(args) != 1 {
			return fmt.Errorf("expected a folder id")
		}
		return c.children(ctx, repo, args[0])
	case "object", "path":
		if len(args) != 1 {
			return fmt.Errorf("expected an object %s", map[string]string{"object": "id", "path": "path"}[command])
		}
		var obj *cmis.ObjectData
		if command == "object" {
			obj, err = c.binding.GetObject(ctx, repo, args[0], browser.ObjectOptions{IncludeAllowableActions: true})
		} else {
			obj, err = c.binding.GetObjectByPath(ctx, repo, args[0], browser.ObjectOptions{IncludeAllowableActions: true})
		}
		if err != nil {
			return err
		}
		c.printObject(obj)
	case "acl":
		if len(args) != 1 {
			return fmt.Errorf("expected an object id")
		}
		acl, err := c.binding.GetAcl(ctx, repo, args[0], false)
		if err != nil {
			return err
		}
		for _, ace := range acl.Aces {
			fmt.Fprintf(c.out, "%s\t%s\tdirect=%t\n", ace.PrincipalID(), strings.Join(ace.Permissions, ","), ace.IsDirect)
		}
	case "versions":
		if len(args) != 1 {
			return fmt.Errorf("expected an object id")
		}
		versions, err := c.binding.GetAllVersions(ctx, repo, args[0], "", false)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tLATEST")
		for _, v := range versions {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID(), firstValue(v.Properties, cmis.PropVersionLabel),
				firstValue(v.Properties, cmis.PropIsLatestVersion))
		}
		return w.Flush()
	case "changes":
		token := ""
		if len(args) > 0 {
			token = args[0]
		}
		return c.changes(ctx, repo, token)
	case "query":
		if len(args) == 0 {
			return fmt.Errorf("expected a statement")
		}
		list, err := c.binding.Query(ctx, repo, strings.Join(args, " "), browser.QueryOptions{MaxItems: c.pageSize})
		if err != nil {
			return err
		}
		for _, obj := range list.Objects {
			c.printObject(obj)
			fmt.Fprintln(c.out)
		}
		if cmis.MoreItems(list.HasMoreItems) {
			fmt.Fprintln(c.out, "(more results available)")
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// repository returns the -repo flag or the first repository of the service.
func (c *cli) repository(ctx context.Context) (string, error) {
	if c.repo != "" {
		return c.repo, nil
	}
	infos, err := c.binding.GetRepositoryInfos(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("service has no repositories")
	}
	c.repo = infos[0].ID
	return c.repo, nil
}

func (c *cli) repositories(ctx context.Context) error {
	infos, err := c.binding.GetRepositoryInfos(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROOT\tPRODUCT\tCMIS")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", info.ID, info.Name, info.RootFolderID,
			info.ProductName, info.ProductVersion, info.CmisVersionSupported)
	}
	return w.Flush()
}

func (c *cli) children(ctx context.Context, repo, folderID string) error {
	it, err := c.binding.Children(ctx, repo, folderID, browser.ListOptions{
		Filter:   "cmis:objectId,cmis:name,cmis:baseTypeId,cmis:objectTypeId",
		MaxItems: c.pageSize,
	})
	if err != nil {
		return err
	}
	defer it.Close()

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE")
	for it.Next() {
		obj := it.Value().Object
		fmt.Fprintf(w, "%s\t%s\t%s\n", obj.ID(), obj.Name(), obj.ObjectTypeID())
	}
	if err := it.Err(); err != nil {
		return err
	}
	return w.Flush()
}

func (c *cli) changes(ctx context.Context, repo, token string) error {
	list, err := c.binding.GetContentChanges(ctx, repo, token, browser.ChangeOptions{MaxItems: c.pageSize})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHANGE\tTIME")
	for _, obj := range list.Objects {
		change, when := "", ""
		if ev := obj.ChangeEventInfo; ev != nil {
			change = string(ev.ChangeType)
			if ev.ChangeTime != nil {
				when = ev.ChangeTime.Format(time.RFC3339)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", obj.ID(), change, when)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if list.ChangeLogToken != "" {
		fmt.Fprintf(c.out, "next token: %s\n", list.ChangeLogToken)
	}
	return nil
}

func (c *cli) printObject(obj *cmis.ObjectData) {
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, p := range obj.Properties.List() {
		values := make([]string, len(p.Values))
		for i, v := range p.Values {
			values[i] = convert.EncodeValue(v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Type, strings.Join(values, ", "))
	}
	w.Flush()
	if obj.AllowableActions != nil {
		fmt.Fprintf(c.out, "actions: %s\n", strings.Join(obj.AllowableActions.List(), " "))
	}
}

func firstValue(props *cmis.Properties, id string) string {
	if p := props.Get(id); p != nil {
		return convert.EncodeValue(p.FirstValue())
	}
	return ""
}

func (c *cli) printType(td *cmis.TypeDefinition) {
	fmt.Fprintf(c.out, "%s (%s, parent %s)\n", td.ID, td.BaseTypeID, td.ParentTypeID)
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, pd := range td.PropertyDefinitions() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", pd.ID, pd.PropertyType, pd.Cardinality, pd.Updatability)
	}
	w.Flush()
}

func (c *cli) printTypeTree(nodes []*cmis.TypeDefinitionContainer, level int) {
	for _, n := range nodes {
		if n == nil || n.Type == nil {
			continue
		}
		fmt.Fprintf(c.out, "%s%s\n", strings.Repeat("  ", level), n.Type.ID)
		c.printTypeTree(n.Children, level+1)
	}
}
