// Command ebmc is the orchestrator: it parses the command line, resolves a
// module out of package examples' in-memory registry (the stand-in for a
// real HDL front-end), selects the bit-level or word-level path, drives
// package bmc to a verdict, and maps the outcome to a process exit code
// via package bmcerr.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rfielding/ebmc-go/bmc"
	"github.com/rfielding/ebmc-go/bmcerr"
	"github.com/rfielding/ebmc-go/examples"
	"github.com/rfielding/ebmc-go/hdl"
	"github.com/rfielding/ebmc-go/hwcbmc"
	"github.com/rfielding/ebmc-go/ldg"
	"github.com/rfielding/ebmc-go/message"
	"github.com/rfielding/ebmc-go/netlist"
	"github.com/rfielding/ebmc-go/property"
	"github.com/rfielding/ebmc-go/report"
	"github.com/rfielding/ebmc-go/solver"
	"github.com/rfielding/ebmc-go/stats"
	"github.com/rfielding/ebmc-go/trace"
	"github.com/rfielding/ebmc-go/unwind"
)

const version = "ebmc-go 0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run implements the full orchestrator state machine so main itself stays
// a one-line os.Exit wrapper and tests can drive the whole surface.
func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("ebmc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		moduleName = fs.String("module", "", "module to check (alias --top)")
		topName    = fs.String("top", "", "top module name")
		boundN     = fs.Int("bound", -1, "check executions of up to this many transitions (the unwinding spans bound+1 frames)")
		maxBound   = fs.Int("max-bound", 10, "highest bound to unwind to when --bound is not given")
		propName   = fs.String("property", "", "restrict the run to a single named property (alias -p)")
		propNameP  = fs.String("p", "", "alias of --property")
		resetFlag  = fs.Bool("reset", false, "apply the selected module's canonical reset predicate")
		_          = fs.String("I", "", "HDL include path (accepted and ignored: no HDL front-end is built in)")

		dimacs     = fs.Bool("dimacs", false, "dump CNF instead of solving")
		smt1       = fs.Bool("smt1", false, "select the word-level path (SMT-LIB1 back-end placeholder)")
		smt2       = fs.Bool("smt2", false, "select the word-level path (SMT-LIB2 back-end placeholder)")
		boolector  = fs.Bool("boolector", false, "select the word-level path (Boolector back-end placeholder)")
		cvc3       = fs.Bool("cvc3", false, "select the word-level path (CVC3 back-end placeholder)")
		yices      = fs.Bool("yices", false, "select the word-level path (Yices back-end placeholder)")
		z3         = fs.Bool("z3", false, "select the word-level path (Z3 back-end placeholder)")
		prover     = fs.Bool("prover", false, "select the word-level path (generic prover back-end placeholder)")
		hwCBMC     = fs.Bool("hw-cbmc", false, "acquire the model via the hw-cbmc integration stub")

		kInduction = fs.Bool("k-induction", false, "disabled: out of scope for this core")
		interp     = fs.Bool("interpolation", false, "disabled: out of scope for this core")
		interpWord = fs.Bool("interpolation-word", false, "disabled: out of scope for this core")
		interpVM   = fs.Bool("interpolation-vmcai", false, "disabled: out of scope for this core")
		coverage   = fs.Bool("coverage", false, "disabled: out of scope for this core")
		lifter     = fs.Bool("lifter", false, "disabled: out of scope for this core")
		computeCT  = fs.Bool("compute-ct", false, "print the structural recurrence-diameter bound and exit")

		vcdPath   = fs.String("vcd", "", "write the first failing property's counterexample as VCD to this file")
		outFile   = fs.String("outfile", "", "write the text/XML report to this file instead of stdout")
		withTrace = fs.Bool("trace", false, "print the counterexample trace for failing properties")
		xmlUI     = fs.Bool("xml-ui", false, "emit the structured XML report instead of text")
		verbosity = fs.Int("verbosity", int(message.LevelStatus), "message verbosity level (0=silent .. 6=debug)")

		showParse       = fs.Bool("show-parse", false, "print a parse-stage notice and exit")
		showModules     = fs.Bool("show-modules", false, "list registered module names and exit")
		showSymbolTable = fs.Bool("show-symbol-table", false, "dump the symbol table and exit")
		showVarmap      = fs.Bool("show-varmap", false, "dump the selected module's variable map and exit")
		showLDG         = fs.Bool("show-ldg", false, "dump the latch dependency graph and exit")
		showNetlist     = fs.Bool("show-netlist", false, "dump the compiled netlist as text and exit")
		smvNetlist      = fs.Bool("smv-netlist", false, "dump the compiled netlist in SMV-flavored form and exit")
		dotNetlist      = fs.Bool("dot-netlist", false, "dump the compiled netlist as a DOT graph and exit")
		showProperties  = fs.Bool("show-properties", false, "list the selected module's properties and exit")
		showVersion     = fs.Bool("version", false, "print the version and exit")
	)

	if err := fs.Parse(args); err != nil {
		return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrUsage, err))
	}

	msg := message.New(stdout, stderr, message.Level(*verbosity))

	if *showVersion {
		msg.Result("%s", version)
		return 0
	}

	switch {
	case *kInduction, *interp, *interpWord, *interpVM, *coverage, *lifter:
		msg.Error("disabled: k-induction/interpolation/coverage/lifter are out of scope for this core")
		return bmcerr.ExitCode(fmt.Errorf("%w: analysis flag disabled", bmcerr.ErrUsage))
	}

	registry := examples.Registry()

	if *showModules {
		for _, name := range registry.ModuleNames() {
			msg.Result("%s", name)
		}
		return 0
	}
	if *showParse {
		msg.Status("parsing is out of scope for this core; resolving modules from the built-in registry instead")
		return 0
	}
	if *showSymbolTable {
		for _, name := range registry.ModuleNames() {
			m, _ := registry.Lookup(name)
			msg.Result("module %s (mode=%q, properties=%d)", m.Name(), m.Mode(), len(m.Properties()))
		}
		return 0
	}

	top := *topName
	if top == "" {
		top = *moduleName
	}
	if *hwCBMC {
		var src hwcbmc.Source = hwcbmc.Unavailable{}
		if _, err := src.Acquire(top); err != nil {
			msg.Error("%v", err)
			return bmcerr.ExitCode(err)
		}
	}

	mod, err := registry.GetMain(top)
	if err != nil {
		msg.Error("%v", err)
		return bmcerr.ExitCode(err)
	}

	if *resetFlag {
		r, ok := examples.ResetFor(mod.Name())
		if !ok {
			err := fmt.Errorf("%w: module %q has no known reset predicate", bmcerr.ErrUsage, mod.Name())
			msg.Error("%v", err)
			return bmcerr.ExitCode(err)
		}
		mod.System().ApplyReset(r)
	}

	if *showProperties {
		for _, p := range mod.Properties() {
			msg.Result("%s: %s", p.Name, p.Expr)
		}
		return 0
	}

	sat := solver.New()
	nl, err := netlist.Build(mod, sat)
	if err != nil {
		msg.Error("%v", err)
		return bmcerr.ExitCode(err)
	}

	switch {
	case *showVarmap:
		for _, name := range nl.VarMap.Names() {
			bits, _ := nl.VarMap.Bits(name)
			msg.Result("%s: width=%d latch=%v", name, len(bits), nl.VarMap.IsLatch(name))
		}
		return 0
	case *showNetlist:
		msg.Result("%s", nl.DumpText())
		return 0
	case *smvNetlist:
		msg.Result("%s", nl.DumpSMV(mod.Name()))
		return 0
	case *dotNetlist:
		msg.Result("%s", nl.DumpDOT(mod.Name()))
		return 0
	case *showLDG:
		msg.Result("%s", ldg.Build(nl).DumpText())
		return 0
	case *computeCT:
		bound, ok := ldg.ComputeCT(nl)
		if !ok {
			msg.Warning("structural CT bound exceeds what a uint64 can represent; fall back to --max-bound")
			return 0
		}
		msg.Result("CT = %d", bound)
		return 0
	}

	st := property.NewStore(mod.Properties())
	selName := *propName
	if selName == "" {
		selName = *propNameP
	}
	if selName != "" {
		if err := st.SelectByName(selName); err != nil {
			msg.Error("%v", err)
			return bmcerr.ExitCode(err)
		}
	}
	if len(st.Enabled()) == 0 {
		err := fmt.Errorf("%w: no properties to check", bmcerr.ErrUsage)
		msg.Error("%v", err)
		return bmcerr.ExitCode(err)
	}

	wordLevel := *smt1 || *smt2 || *boolector || *cvc3 || *yices || *z3 || *prover

	// An explicit --bound pins the sweep's highest bound; verdicts are the
	// same as checking exactly that bound, with the shortest counterexample
	// reported for a FAILURE.
	limit := *maxBound
	if *boundN >= 0 {
		limit = *boundN
	}

	var outcomes []bmc.Outcome
	var wu *unwind.WordUnwinder
	if wordLevel {
		var werr error
		wu, werr = unwind.NewWordUnwinder(sat, mod.System())
		if werr != nil {
			msg.Error("%v", werr)
			return bmcerr.ExitCode(werr)
		}
		outcomes, err = bmc.RunWord(sat, mod.System(), wu, st.Enabled(), bmc.RunOptions{MaxBound: limit})
	} else {
		u := unwind.NewBMCUnwinder(sat, nl)
		if *dimacs {
			for i := 0; i < limit; i++ {
				if extendErr := u.Extend(); extendErr != nil {
					msg.Error("%v", extendErr)
					return bmcerr.ExitCode(extendErr)
				}
			}
			var w *os.File = stdout
			if *outFile != "" {
				f, createErr := os.Create(*outFile)
				if createErr != nil {
					msg.Error("%v", createErr)
					return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrUsage, createErr))
				}
				defer f.Close()
				w = f
			}
			if dErr := sat.WriteDIMACS(w, u.Roots()...); dErr != nil {
				msg.Error("%v", dErr)
				return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrSolver, dErr))
			}
			return 0
		}
		outcomes, err = bmc.Run(sat, nl, u, st.Enabled(), bmc.RunOptions{MaxBound: limit})
	}
	if err != nil {
		msg.Error("%v", err)
		return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrSolver, err))
	}

	if *vcdPath != "" && !wordLevel {
		if vcdErr := writeFirstFailureVCD(*vcdPath, sat, nl, unwind.NewBMCUnwinder(sat, nl), outcomes, mod.Name()); vcdErr != nil {
			msg.Warning("could not write VCD: %v", vcdErr)
		}
	}

	var out *os.File = stdout
	if *outFile != "" && !*dimacs {
		f, createErr := os.Create(*outFile)
		if createErr != nil {
			msg.Error("%v", createErr)
			return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrUsage, createErr))
		}
		defer f.Close()
		out = f
	}

	if *xmlUI {
		if xmlErr := report.WriteXML(out, outcomes); xmlErr != nil {
			msg.Error("%v", xmlErr)
			return bmcerr.ExitCode(fmt.Errorf("%w: %v", bmcerr.ErrSolver, xmlErr))
		}
	} else {
		textMsg := msg
		if out != stdout {
			textMsg = message.New(out, stderr, message.Level(*verbosity))
		}
		report.WriteText(textMsg, outcomes, stats.Global.Summary())
		if *withTrace {
			if wordLevel {
				printTracesWord(msg, sat, mod.System(), wu, outcomes)
			} else {
				printTraces(msg, sat, nl, outcomes)
			}
		}
	}

	failed := false
	for _, o := range outcomes {
		if o.Property.Status == property.Failure {
			failed = true
		}
	}
	if failed {
		return 10
	}
	return 0
}

// printTraces re-extracts and prints a text-mode counterexample for every
// FAILURE outcome.
func printTraces(msg *message.Message, sat *solver.SAT, nl *netlist.Netlist, outcomes []bmc.Outcome) {
	for _, o := range outcomes {
		if o.Property.Status != property.Failure {
			continue
		}
		u := unwind.NewBMCUnwinder(sat, nl)
		for i := 0; i < o.Property.FailedAtFrame; i++ {
			if err := u.Extend(); err != nil {
				msg.Warning("trace for %q: %v", o.Property.Name, err)
				return
			}
		}
		if err := bmc.ReplaySAT(sat, nl, u, o.Property); err != nil {
			msg.Warning("trace for %q: %v", o.Property.Name, err)
			return
		}
		relevant := trace.RelevantVars(nl, o.Property.Source)
		tr := trace.Extract(sat, nl, u, o.Property.FailedAtFrame, relevant)
		for _, frame := range tr.Frames {
			msg.Result("  frame %d: %v", frame.Index, frame.Vars)
		}
	}
}

// printTracesWord is printTraces for the word-level path, reusing the
// run's own unwinder (already extended to every failing frame).
func printTracesWord(msg *message.Message, sat *solver.SAT, sys *hdl.System, u *unwind.WordUnwinder, outcomes []bmc.Outcome) {
	for _, o := range outcomes {
		if o.Property.Status != property.Failure {
			continue
		}
		if err := bmc.ReplaySATWord(sat, sys, u, o.Property); err != nil {
			msg.Warning("trace for %q: %v", o.Property.Name, err)
			return
		}
		relevant := trace.RelevantVarsWord(sys, o.Property.Source)
		tr := trace.ExtractWord(sat, sys, u, o.Property.FailedAtFrame, relevant)
		for _, frame := range tr.Frames {
			msg.Result("  frame %d: %v", frame.Index, frame.Vars)
		}
	}
}

// writeFirstFailureVCD re-extracts the first FAILURE outcome found (in
// outcomes' declaration order) and writes it as VCD; later failures are
// not serialized.
func writeFirstFailureVCD(path string, sat *solver.SAT, nl *netlist.Netlist, u *unwind.BMCUnwinder, outcomes []bmc.Outcome, moduleName string) error {
	for _, o := range outcomes {
		if o.Property.Status != property.Failure {
			continue
		}
		for i := 0; i < o.Property.FailedAtFrame; i++ {
			if err := u.Extend(); err != nil {
				return err
			}
		}
		if err := bmc.ReplaySAT(sat, nl, u, o.Property); err != nil {
			return err
		}
		relevant := trace.RelevantVars(nl, o.Property.Source)
		tr := trace.Extract(sat, nl, u, o.Property.FailedAtFrame, relevant)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return tr.WriteVCD(f, moduleName)
	}
	return nil
}
