package render

import (
	"encoding/json"
	"testing"

	"github.com/rgonek/post-markup/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	imageAttrs = `class="post-image" style="max-width: 100%; height: auto;" />`
	linkAttrs  = ` target="_blank" rel="noopener noreferrer" class="post-link">`
)

func newTestRenderer(t testing.TB, cfg Config) *Renderer {
	t.Helper()
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestRenderEmptyDocument(t *testing.T) {
	result := newTestRenderer(t, Config{}).Render("")
	assert.Equal(t, Result{}, result)
	assert.Equal(t, "", ToDisplay(""))
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "list followed by paragraph",
			source: "- a\n- b\nc",
			want:   "<ul><li>a</li><li>b</li></ul><div>c</div>",
		},
		{
			name:   "document ending inside a list",
			source: "- a\n- b",
			want:   "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:   "paragraph then list",
			source: "intro\n- a",
			want:   "<div>intro</div><ul><li>a</li></ul>",
		},
		{
			name:   "indented marker and extra spaces",
			source: "  -   item",
			want:   "<ul><li>item</li></ul>",
		},
		{
			name:   "dash without space is text",
			source: "-not a list",
			want:   "<div>-not a list</div>",
		},
		{
			name:   "leading blank lines emit nothing",
			source: "\n\na\n\nb",
			want:   "<div>a</div><br/><div>b</div>",
		},
		{
			name:   "blank line inside a list keeps it open",
			source: "- a\n\n- b",
			want:   "<ul><li>a</li><br/><li>b</li></ul>",
		},
		{
			name:   "markup lines pass through",
			source: "<h2>Title</h2>\ntext",
			want:   "<h2>Title</h2><div>text</div>",
		},
		{
			name:   "carriage returns are dropped",
			source: "a\r\n- b\r\nc",
			want:   "<div>a</div><ul><li>b</li></ul><div>c</div>",
		},
		{
			name:   "trailing newline becomes a line break",
			source: "a\n",
			want:   "<div>a</div><br/>",
		},
		{
			name:   "placeholder-shaped text without an embed is wrapped",
			source: "__CHART_0__",
			want:   "<div>__CHART_0__</div>",
		},
		{
			name:   "less-than that is not a tag is wrapped",
			source: "< 3 apples",
			want:   "<div>< 3 apples</div>",
		},
	}

	r := newTestRenderer(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(tt.source).HTML)
		})
	}
}

func TestRenderInlineMarks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "bold before italic",
			source: "**bold** and *italic*",
			want:   "<div><strong>bold</strong> and <em>italic</em></div>",
		},
		{
			name:   "italic nested in bold",
			source: "**a*b*c**",
			want:   "<div>**a<em>b</em>c**</div>",
		},
		{
			name:   "unbalanced asterisks stay literal",
			source: "*a**b*c**",
			want:   "<div>*a**b*c**</div>",
		},
		{
			name:   "triple asterisks",
			source: "***x***",
			want:   "<div><em><strong>x</strong></em></div>",
		},
		{
			name:   "bold does not cross lines",
			source: "**a\nb**",
			want:   "<div>**a</div><div>b**</div>",
		},
		{
			name:   "emphasis inside list items",
			source: "- **a**\n- *b*",
			want:   "<ul><li><strong>a</strong></li><li><em>b</em></li></ul>",
		},
		{
			name:   "image",
			source: "![alt](http://x/img.png)",
			want:   `<div><img src="http://x/img.png" alt="alt" ` + imageAttrs + `</div>`,
		},
		{
			name:   "link",
			source: "[site](https://example.com)",
			want:   `<div><a href="https://example.com"` + linkAttrs + `site</a></div>`,
		},
		{
			name:   "link around image",
			source: "[![a](i.png)](https://x)",
			want:   `<div><a href="https://x"` + linkAttrs + `<img src="i.png" alt="a" ` + imageAttrs + `</a></div>`,
		},
		{
			name:   "bold link text",
			source: "[**go**](https://go.dev)",
			want:   `<div><a href="https://go.dev"` + linkAttrs + `<strong>go</strong></a></div>`,
		},
		{
			name:   "attribute values are escaped",
			source: `![a "q"](http://x/?a=1&b=2)`,
			want:   `<div><img src="http://x/?a=1&amp;b=2" alt="a &quot;q&quot;" ` + imageAttrs + `</div>`,
		},
		{
			name:   "unterminated link",
			source: "[a](b",
			want:   "<div>[a](b</div>",
		},
		{
			name:   "space between label and url",
			source: "[a] (b)",
			want:   "<div>[a] (b)</div>",
		},
		{
			name:   "nested opening bracket restarts the match",
			source: "[a[b](c)",
			want:   `<div>[a<a href="c"` + linkAttrs + `b</a></div>`,
		},
		{
			name:   "image opener after stray bracket",
			source: "![a![b](c)",
			want:   `<div>![a<img src="c" alt="b" ` + imageAttrs + `</div>`,
		},
	}

	r := newTestRenderer(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Render(tt.source).HTML)
		})
	}
}

func TestStagesRunInDeclaredOrder(t *testing.T) {
	assert.Equal(t, []Stage{StageBold, StageItalic, StageImage, StageLink}, Stages())

	var names []string
	for _, stage := range Stages() {
		names = append(names, stage.String())
	}
	assert.Equal(t, []string{"bold", "italic", "image", "link"}, names)
	assert.Equal(t, "unknown", Stage(99).String())
}

func TestStageOrderMatters(t *testing.T) {
	s := &state{config: Config{}.applyDefaults()}

	linkFirst := s.convertLinks("![a](u)")
	assert.Equal(t, `!<a href="u"`+linkAttrs+`a</a>`, linkFirst)

	imageFirst := s.convertLinks(s.convertImages("![a](u)"))
	assert.Equal(t, `<img src="u" alt="a" `+imageAttrs, imageFirst)
}

func TestRenderWithConfig(t *testing.T) {
	r := newTestRenderer(t, Config{
		BlockTag:   BlockParagraph,
		LinkTarget: LinkTargetSelf,
		LinkClass:  "inline-link",
		ImageClass: "inline-image",
		ImageStyle: "width: 50%;",
	})

	got := r.Render("[x](y)\n![a](b)").HTML
	assert.Equal(t,
		`<p><a href="y" class="inline-link">x</a></p><p><img src="b" alt="a" class="inline-image" style="width: 50%;" /></p>`,
		got,
	)
}

func TestRenderPreservesEmbeds(t *testing.T) {
	fragment := embed.Fragment(embed.Descriptor{URL: "https://charts.example.com/v/42", Title: "Sales"})
	source := "Intro\n" + fragment + "\n- item"

	result := newTestRenderer(t, Config{}).Render(source)
	assert.Equal(t, "<div>Intro</div>"+fragment+"<ul><li>item</li></ul>", result.HTML)
	assert.Equal(t, []embed.Descriptor{{URL: "https://charts.example.com/v/42", Title: "Sales"}}, result.Embeds)
	assert.Empty(t, result.Warnings)
}

func TestRenderDoesNotTouchEmbedMarkup(t *testing.T) {
	fragment := `<div class="chart-container"><iframe src="https://x.test/*a*/[b](c)"></iframe></div>`
	source := "**before**\n" + fragment + "\n*after*"

	got := ToDisplay(source)
	assert.Equal(t, "<div><strong>before</strong></div>"+fragment+"<div><em>after</em></div>", got)
}

func TestRenderProtectsEmbedsWithCaptions(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
	}{
		{
			name:     "caption before the iframe",
			fragment: `<div class="chart-container"><h4>Sales</h4><iframe src="https://c.test/*q*/v"></iframe></div>`,
		},
		{
			name:     "caption after the iframe",
			fragment: `<div class="chart-container"><iframe src="https://c.test/[a](b)"></iframe><span>**note**</span></div>`,
		},
	}

	r := newTestRenderer(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Render("Intro\n" + tt.fragment)
			assert.Equal(t, "<div>Intro</div>"+tt.fragment, result.HTML)
			require.Len(t, result.Embeds, 1)
		})
	}
}

func TestRenderKeepsLiteralPlaceholderBesideEmbed(t *testing.T) {
	fragment := embed.Fragment(embed.Descriptor{URL: "https://charts.example.com/v/42", Title: "Sales"})

	result := newTestRenderer(t, Config{}).Render("see __CHART_0__\n" + fragment)
	assert.Equal(t, "<div>see __CHART_0__</div>"+fragment, result.HTML)
	assert.Len(t, result.Embeds, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningPlaceholderCollision, result.Warnings[0].Type)
}

func TestRenderWarnsOnPlaceholderText(t *testing.T) {
	result := newTestRenderer(t, Config{}).Render("literal __CHART_0__")

	assert.Equal(t, "<div>literal __CHART_0__</div>", result.HTML)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningPlaceholderCollision, result.Warnings[0].Type)
}

func TestResultJSONSerialization(t *testing.T) {
	in := Result{
		HTML:   "<div>x</div>",
		Embeds: []embed.Descriptor{{URL: "https://x.test", Title: "t"}},
		Warnings: []Warning{
			{Type: WarningUnknownNode, NodeType: "span", Message: "stripped"},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Result
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
