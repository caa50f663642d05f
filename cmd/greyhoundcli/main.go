// Command greyhoundcli drives the commitment scheme and sum-check engine
// from the shell: it is a thin wrapper for exercising commit/eval/hvzk and
// the range sum-check against randomly generated toy instances,
// not a production prover.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"greyhound/field"
	"greyhound/internal/seedrand"
	"greyhound/measureutil"
	"greyhound/metrics"
	"greyhound/pcs"
	"greyhound/ring"
	"greyhound/sumcheck"
)

func usage() {
	fmt.Println(`usage: greyhoundcli <commit|eval|hvzk|sumcheck> [options]

Subcommands:
  commit    Commit to a random degree-N polynomial
            Flags:
              -N    <int>     polynomial degree bound (default 4096)
              -seed <uint>    PRG seed for f and CommitParams (default 123)
              -v              print prof/metrics report after running

  eval      Commit, then prove and verify an evaluation at a random point
            Flags:
              -N    <int>     polynomial degree bound (default 4096)
              -seed <uint>    PRG seed (default 123)
              -x    <uint>    evaluation point mod q (default 7)
              -v              print prof/metrics report after running

  hvzk      Same as eval but through the HVZK-masked proof path
            Flags:
              -N    <int>     polynomial degree bound (default 4096)
              -seed <uint>    PRG seed (default 77)
              -x    <uint>    evaluation point mod q (default 7)
              -L    <int>     number of masking polynomials (default 4)
              -mu   <int>     hiding rank (default 4)
              -muv  <int>     mask-blinding rank (default 4)
              -v              print prof/metrics report after running

  sumcheck  Run the norm-bound range sum-check on a random in-range table
            Flags:
              -mk   <int>     row-index bit width (default 5)
              -md   <int>     column-index bit width (default 6)
              -seed <uint>    PRG seed (default 1)
              -v              print prof/metrics report after running`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "commit":
		runCommit(os.Args[2:])
	case "eval":
		runEval(os.Args[2:])
	case "hvzk":
		runHvzk(os.Args[2:])
	case "sumcheck":
		runSumcheck(os.Args[2:])
	default:
		usage()
	}
}

func dumpIfVerbose(verbose bool) {
	if !verbose {
		return
	}
	for _, e := range metrics.SnapshotAndReset() {
		fmt.Printf("%-30s %s\n", e.Label, e.Dur)
	}
	counters := measureutil.SnapshotAndReset()
	labels := make([]string, 0, len(counters))
	for l := range counters {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Printf("%-40s %d bytes\n", l, counters[l])
	}
}

func randomField(n int, q ring.ModQ, seed uint64) []uint32 {
	rng := seedrand.New(seed)
	f := make([]uint32, n)
	for i := range f {
		f[i] = rng.Uint32ModQ(q)
	}
	return f
}

func runCommit(args []string) {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
	n := fs.Int("N", 4096, "polynomial degree bound")
	seed := fs.Uint64("seed", 123, "PRG seed")
	verbose := fs.Bool("v", false, "print prof/metrics report")
	fs.Parse(args)
	metrics.Enabled = *verbose

	q := ring.NewModQ(229)
	pp := pcs.SetupToy(*n, q, *seed)
	f := randomField(*n, q, *seed^0xF00D)
	comm, _ := pcs.Commit(pp, f)
	fmt.Printf("committed degree-%d polynomial: u has %d ring elements\n", *n, len(comm.U))
	dumpIfVerbose(*verbose)
}

func runEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	n := fs.Int("N", 4096, "polynomial degree bound")
	seed := fs.Uint64("seed", 123, "PRG seed")
	x := fs.Uint64("x", 7, "evaluation point")
	verbose := fs.Bool("v", false, "print prof/metrics report")
	fs.Parse(args)
	metrics.Enabled = *verbose

	q := ring.NewModQ(229)
	pp := pcs.SetupToy(*n, q, *seed)
	f := randomField(*n, q, *seed^0xF00D)
	comm, dec := pcs.Commit(pp, f)

	xField := uint32(*x) % q.Q
	yField, proof := pcs.EvalProve(pp, comm, xField, f, dec)
	ok := pcs.EvalVerify(pp, comm, xField, yField, proof)
	fmt.Printf("f(%d) = %d, eval_verify = %v\n", xField, yField, ok)
	dumpIfVerbose(*verbose)
	if !ok {
		os.Exit(1)
	}
}

func runHvzk(args []string) {
	fs := flag.NewFlagSet("hvzk", flag.ExitOnError)
	n := fs.Int("N", 4096, "polynomial degree bound")
	seed := fs.Uint64("seed", 77, "PRG seed")
	x := fs.Uint64("x", 7, "evaluation point")
	l := fs.Int("L", 4, "number of masking polynomials")
	mu := fs.Int("mu", 4, "hiding rank")
	muV := fs.Int("muv", 4, "mask-blinding rank")
	verbose := fs.Bool("v", false, "print prof/metrics report")
	fs.Parse(args)
	metrics.Enabled = *verbose

	q := ring.NewModQ(229)
	params := pcs.SetupHvzkToy(*n, q, *seed, *l, *mu, *muV)
	f := randomField(*n, q, *seed^0xBEEF)

	xField := uint32(*x) % q.Q
	comm, proof := pcs.EvalProveHvzkClear(params, xField, f)
	ok := pcs.EvalVerifyHvzkClear(params, comm, xField, proof)
	fmt.Printf("f(%d) = %d (masked), eval_verify_hvzk_clear = %v\n", xField, proof.YField, ok)
	dumpIfVerbose(*verbose)
	if !ok {
		os.Exit(1)
	}
}

func runSumcheck(args []string) {
	fs := flag.NewFlagSet("sumcheck", flag.ExitOnError)
	mk := fs.Int("mk", 5, "row-index bit width")
	md := fs.Int("md", 6, "column-index bit width")
	seed := fs.Uint64("seed", 1, "PRG seed")
	verbose := fs.Bool("v", false, "print prof/metrics report")
	fs.Parse(args)
	metrics.Enabled = *verbose

	rowsK, colsD := 1<<*mk, 1<<*md
	rng := seedrand.New(*seed)
	toyQ := ring.NewModQ(229) // only used to drive the PRG's draws, not the Fq arithmetic itself

	w := make([]field.Fq, rowsK*colsD)
	for i := range w {
		v := int64(rng.Uint32ModQ(toyQ)%17) - 8
		if v < 0 {
			w[i] = field.NewFq(uint64(int64(field.FqModulus) + v))
		} else {
			w[i] = field.NewFq(uint64(v))
		}
	}

	tau0 := make([]field.Fq, *mk+*md)
	for i := range tau0 {
		tau0[i] = field.NewFq(uint64(rng.Uint32ModQ(toyQ)))
	}
	table := sumcheck.BuildRangeTable(w, *mk, *md, tau0)

	rs := make([]field.Fq, *mk+*md)
	for i := range rs {
		rs[i] = field.NewFq(uint64(rng.Uint32ModQ(toyQ)))
	}
	claimed := field.ZeroFq()
	for _, v := range table {
		claimed = claimed.Add(v)
	}
	proof := sumcheck.ProveFromTableFq(table, rs)
	ok := sumcheck.VerifyFq(claimed, table, proof, rs)
	fmt.Printf("range sum-check over %d entries, claimed sum zero=%v, verify=%v\n", len(table), claimed.IsZero(), ok)
	dumpIfVerbose(*verbose)
	if !ok {
		os.Exit(1)
	}
}
