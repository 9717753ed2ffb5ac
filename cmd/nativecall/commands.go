package main

import (
	"flag"
	"fmt"

	"github.com/chazu/nativecall/cext"
	"github.com/chazu/nativecall/config"
	"github.com/chazu/nativecall/introspect"
	"github.com/chazu/nativecall/natives"
	"github.com/chazu/nativecall/object"
	"github.com/chazu/nativecall/trace"
)

func runConventions(out *printer) error {
	out.heading("%-18s %s", "CONVENTION", "SIGNATURE")
	for _, c := range cext.Conventions() {
		out.line("%-18s %s", c, c.Signature())
	}
	return nil
}

// runInspect processes `nativecall inspect`.
// Usage:
//
//	nativecall inspect github.com/chazu/nativecall/natives
//	nativecall inspect -all strings
func runInspect(out *printer, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	all := fs.Bool("all", false, "Also list functions that fit no convention")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect takes exactly one package path")
	}

	model, err := introspect.IntrospectPackage(fs.Arg(0), *all)
	if err != nil {
		return err
	}

	out.heading("package %s (%s)", model.Name, model.ImportPath)
	if len(model.Functions) == 0 {
		out.line("  no native callees")
		return nil
	}
	for _, fn := range model.Functions {
		if len(fn.Conventions) == 0 {
			out.line("  %-28s -", fn.QualifiedName())
			continue
		}
		out.line("  %-28s %s", fn.QualifiedName(), join(fn.Conventions))
	}
	return nil
}

// runDemo binds the bundled extension and calls each root once.
func runDemo(out *printer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	record := fs.Bool("trace", cfg.Trace.Enabled, "Record crossings in the trace journal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []cext.Option
	if *record {
		j, err := trace.OpenJournal(cfg.JournalPath())
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, cext.WithSink(j))
	}

	rt := cext.New(cfg, opts...)
	ctx := rt.NewContext()
	roots := natives.NewModule(rt.API(ctx), 3).Roots(rt)
	self := rt.Factory.NewStr(", ")

	calls := []struct {
		root  string
		frame *object.Arguments
	}{
		{"len", object.NewArguments(self, "native")},
		{"concat", object.NewArguments(self).WithVarargs("a", "b", "c")},
		{"join", object.NewArguments(self).WithVarargs("x", "y", "z")},
		{"getattr", object.NewArguments(self, "limit")},
		{"setattr", object.NewArguments(self, "limit", 2)},
		{"compare", object.NewArguments(1000, 999, int64(cext.OpGT))},
		{"eq", object.NewArguments(7, 7)},
		{"next", object.NewArguments(self)},
		{"next", object.NewArguments(self)},
		{"next", object.NewArguments(self)},
		{"fail", object.NewArguments(self, object.None)},
		{"getattr", object.NewArguments(self, "missing")},
	}

	out.heading("%-10s %-34s %s", "ROOT", "SIGNATURE", "RESULT")
	for _, c := range calls {
		r := roots[c.root]
		res, err := r.Execute(ctx, c.frame)
		if err != nil {
			out.failure("%-10s %-34s %v", c.root, r.Signature(), err)
			continue
		}
		out.line("%-10s %-34s %s", c.root, r.Signature(), object.Repr(res))
	}
	out.line("")
	out.line("published handles after demo: %d", rt.Handles.Len())
	if *record {
		out.line("trace journal: %s", cfg.JournalPath())
	}
	return nil
}

// runTrace processes `nativecall trace`.
func runTrace(out *printer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	failed := fs.Bool("failed", false, "Only show calls that faulted")
	name := fs.String("name", "", "Only show calls to this root")
	limit := fs.Int("limit", 0, "Maximum number of records")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := cfg.JournalPath()
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	j, err := trace.OpenJournal(path)
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.Records(trace.Query{Name: *name, FailedOnly: *failed, Limit: *limit})
	if err != nil {
		return err
	}
	out.heading("%d records in %s", len(recs), path)
	for i := range recs {
		if recs[i].Failed() {
			out.failure("%s", recs[i].String())
			continue
		}
		out.line("%s", recs[i].String())
	}
	return nil
}
