package normalize

import (
	"cmp"
	"fmt"
	"slices"

	"regionorm/internal/ast"
	"regionorm/internal/source"
	"regionorm/internal/trace"
)

// Rule names the elision rule that resolved a signature output.
type Rule uint8

const (
	// RuleNoOutput: the signature has no -> clause.
	RuleNoOutput Rule = iota
	// RuleReceiver: the output took the receiver's region.
	RuleReceiver
	// RuleSingleInput: the output took the only region of the typed inputs.
	RuleSingleInput
	// RuleAmbiguous: no elision candidate, the output was left as written.
	RuleAmbiguous
)

func (r Rule) String() string {
	switch r {
	case RuleNoOutput:
		return "no-output"
	case RuleReceiver:
		return "receiver"
	case RuleSingleInput:
		return "single-input"
	case RuleAmbiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Rule(%d)", uint8(r))
	}
}

// HeaderReport describes what was generated for one impl header.
type HeaderReport struct {
	SelfTy    string
	Span      source.Span
	Generated []string
}

// SignatureReport describes what was done to one signature.
type SignatureReport struct {
	Owner     string // self type or trait name, "" for free functions
	Name      string
	Span      source.Span
	Generated []string
	Rule      Rule
	Region    string // region given to the output, "" unless Rule is receiver or single-input
	Elided    int    // output positions rewritten
	Collected CollectState
}

// Unresolved is an output position that still has an omitted or anonymous
// region after normalization.
type Unresolved struct {
	Owner     string
	Signature string
	Span      source.Span
	Anonymous bool         // '_ rather than an omitted region
	Collected CollectState // what the typed inputs offered
}

// Result collects reports for everything the normalizer touched.
type Result struct {
	Headers    []HeaderReport
	Signatures []SignatureReport
	Unresolved []Unresolved
}

// Generated returns the total number of region names introduced.
func (r *Result) Generated() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, h := range r.Headers {
		total += len(h.Generated)
	}
	for _, s := range r.Signatures {
		total += len(s.Generated)
	}
	return total
}

// Merge appends other to r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Headers = append(r.Headers, other.Headers...)
	r.Signatures = append(r.Signatures, other.Signatures...)
	r.Unresolved = append(r.Unresolved, other.Unresolved...)
}

// Normalizer rewrites items in place. It keeps no state between calls and is
// safe for concurrent use on distinct trees.
type Normalizer struct {
	opts   Options
	tracer trace.Tracer
	parent uint64
}

// New creates a Normalizer; empty prefixes fall back to the defaults.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts.withDefaults(), tracer: trace.Nop}
}

// WithTracer returns a copy that emits node-level points under parent.
func (n *Normalizer) WithTracer(t trace.Tracer, parent uint64) *Normalizer {
	if t == nil {
		t = trace.Nop
	}
	cp := *n
	cp.tracer = t
	cp.parent = parent
	return &cp
}

// Options returns the effective options.
func (n *Normalizer) Options() Options { return n.opts }

// NormalizeFile rewrites every top-level item of f.
func (n *Normalizer) NormalizeFile(f *ast.File) *Result {
	res := &Result{}
	if f == nil {
		return res
	}
	for _, it := range f.Items {
		n.item(it, res)
	}
	return res
}

// NormalizeItem rewrites one item: an impl (header and member signatures),
// a trait (member signatures) or a free function. Other items are left alone.
func (n *Normalizer) NormalizeItem(it *ast.Item) *Result {
	res := &Result{}
	n.item(it, res)
	return res
}

func (n *Normalizer) item(it *ast.Item, res *Result) {
	if it == nil {
		return
	}
	switch data := it.Data.(type) {
	case *ast.ImplData:
		h := n.header(it, data)
		res.Headers = append(res.Headers, h)
		n.members(h.SelfTy, data.Items, res)
	case *ast.TraitData:
		n.members(data.Name, data.Items, res)
	case *ast.FnData:
		n.signature("", data.Sig, res)
	}
}

func (n *Normalizer) members(owner string, items []*ast.Item, res *Result) {
	for _, member := range items {
		if fn, ok := member.Data.(*ast.FnData); ok {
			n.signature(owner, fn.Sig, res)
		}
	}
}

func (n *Normalizer) header(it *ast.Item, data *ast.ImplData) HeaderReport {
	rep := HeaderReport{Span: it.Span}
	if data.Generics == nil {
		data.Generics = &ast.Generics{}
	}
	if data.SelfTy != nil {
		rep.Generated = AssignRegions(n.opts.HeaderPrefix, data.Generics, data.SelfTy)
	}
	rep.SelfTy = ast.TypeString(data.SelfTy)
	if len(rep.Generated) > 0 {
		trace.Point(n.tracer, trace.ScopeNode, "impl-header",
			fmt.Sprintf("impl %s: %v", rep.SelfTy, rep.Generated), n.parent)
	}
	return rep
}

// NormalizeSignature assigns input regions of sig and resolves its output.
func (n *Normalizer) NormalizeSignature(sig *ast.Signature) SignatureReport {
	res := &Result{}
	return n.signature("", sig, res)
}

func (n *Normalizer) signature(owner string, sig *ast.Signature, res *Result) SignatureReport {
	if sig == nil {
		return SignatureReport{}
	}
	if sig.Generics == nil {
		sig.Generics = &ast.Generics{}
	}
	rep := SignatureReport{Owner: owner, Name: sig.Name, Span: sig.Span}

	a := newRegionAssigner(n.opts.SignaturePrefix, sig.Generics)
	for _, arg := range sig.Inputs {
		ast.Walk(a, arg)
	}
	rep.Generated = a.assigned

	if sig.Output == nil {
		rep.Rule = RuleNoOutput
		res.Signatures = append(res.Signatures, rep)
		return rep
	}

	region := receiverRegion(sig)
	if region != nil {
		rep.Rule = RuleReceiver
	} else {
		region, rep.Collected = CollectRegion(sig.Inputs)
		if region != nil {
			rep.Rule = RuleSingleInput
		}
	}

	if region == nil {
		rep.Rule = RuleAmbiguous
		res.Unresolved = append(res.Unresolved, unresolvedIn(owner, sig, rep.Collected)...)
	} else {
		rep.Region = region.Name
		rep.Elided = ElideOutput(region, sig.Output)
	}

	trace.Point(n.tracer, trace.ScopeNode, "signature",
		fmt.Sprintf("fn %s: generated=%v rule=%s", qualified(owner, sig.Name), rep.Generated, rep.Rule), n.parent)
	res.Signatures = append(res.Signatures, rep)
	return rep
}

// receiverRegion is the region of &self / &'a self, or of the reference type
// in self: &'a T. Any other receiver has none.
func receiverRegion(sig *ast.Signature) *ast.Lifetime {
	r := sig.Receiver()
	if r == nil {
		return nil
	}
	if r.Form == ast.ReceiverRef && r.Lifetime != nil {
		return r.Lifetime
	}
	if ref, ok := r.Type.Ref(); ok {
		return ref.Lifetime
	}
	return nil
}

func unresolvedIn(owner string, sig *ast.Signature, collected CollectState) []Unresolved {
	var s unresolvedScanner
	ast.Walk(&s, sig.Output)
	out := make([]Unresolved, 0, len(s.anon)+len(s.omitted))
	for _, lt := range s.anon {
		out = append(out, Unresolved{Owner: owner, Signature: sig.Name, Span: lt.Span, Anonymous: true, Collected: collected})
	}
	for _, t := range s.omitted {
		out = append(out, Unresolved{Owner: owner, Signature: sig.Name, Span: t.Span, Collected: collected})
	}
	slices.SortStableFunc(out, func(a, b Unresolved) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return out
}

// Qualified returns owner::name, or name for free functions.
func (u Unresolved) Qualified() string { return qualified(u.Owner, u.Signature) }

// Qualified returns owner::name, or name for free functions.
func (r SignatureReport) Qualified() string { return qualified(r.Owner, r.Name) }

func qualified(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + "::" + name
}
