package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-modernblog/internal/imagepath"
)

// rawHTMLPriority places the renderer ahead of goldmark's default HTML
// renderer (priority 1000) so its functions win for raw HTML kinds.
const rawHTMLPriority = 100

// imagePathExtension renders raw HTML blocks and inline HTML through an
// imagepath.Rewriter.
type imagePathExtension struct {
	rewriter *imagepath.Rewriter
}

// Extend implements goldmark.Extender.
func (e *imagePathExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newRawHTMLRenderer(e.rewriter), rawHTMLPriority),
	))
}

// rawHTMLRenderer writes raw HTML with image src attributes rewritten.
// It honors the html.WithUnsafe option like goldmark's own renderer.
type rawHTMLRenderer struct {
	html.Config
	rewriter *imagepath.Rewriter
}

func newRawHTMLRenderer(rewriter *imagepath.Rewriter) *rawHTMLRenderer {
	return &rawHTMLRenderer{
		Config:   html.NewConfig(),
		rewriter: rewriter,
	}
}

// SetOption implements renderer.SetOptioner.
func (r *rawHTMLRenderer) SetOption(name renderer.OptionName, value any) {
	r.Config.SetOption(name, value)
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *rawHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *rawHTMLRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
		return ast.WalkContinue, nil
	}

	n := node.(*ast.HTMLBlock)
	raw := segmentsValue(n.Lines(), source)
	if n.HasClosure() {
		raw += string(n.ClosureLine.Value(source))
	}
	r.Writer.SecureWrite(w, []byte(r.rewriter.RewriteMarkup(raw)))
	return ast.WalkContinue, nil
}

func (r *rawHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->")
		return ast.WalkSkipChildren, nil
	}

	n := node.(*ast.RawHTML)
	_, _ = w.WriteString(r.rewriter.RewriteMarkup(segmentsValue(n.Segments, source)))
	return ast.WalkSkipChildren, nil
}

func segmentsValue(segs *text.Segments, source []byte) string {
	var buf []byte
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf = append(buf, seg.Value(source)...)
	}
	return string(buf)
}
