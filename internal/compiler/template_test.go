package compiler

import (
	"strings"
	"testing"
)

func TestCompileTemplateAnnotatesElements(t *testing.T) {
	src := "<template>\n  <div>\n    <span>hi</span>\n  </div>\n</template>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	wantDiv := `<div data-v-inspector-file="src/App.vue" data-v-inspector-line="2" data-v-inspector-column="3">`
	if !strings.Contains(got, wantDiv) {
		t.Errorf("compiled output missing %q:\n%s", wantDiv, got)
	}
	wantSpan := `<span data-v-inspector-file="src/App.vue" data-v-inspector-line="3" data-v-inspector-column="5">`
	if !strings.Contains(got, wantSpan) {
		t.Errorf("compiled output missing %q:\n%s", wantSpan, got)
	}
	if n := CountAnnotations(got); n != 2 {
		t.Errorf("CountAnnotations() = %d, want 2", n)
	}
}

func TestCompileTemplateIsIdempotent(t *testing.T) {
	src := "<template>\n  <div >\n    <img src=\"a.png\"/>\n    <br />\n    <p\n      class=\"x\"\n    >t</p>\n  </div>\n</template>\n"

	once, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("first Compile() error = %v", err)
	}
	twice, err := Compile(once, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("second Compile() error = %v", err)
	}
	if twice != once {
		t.Errorf("second compile changed output:\nfirst:  %q\nsecond: %q", once, twice)
	}
	if n := CountAnnotations(twice); n != 4 {
		t.Errorf("CountAnnotations() = %d, want 4", n)
	}
}

func TestCompileTemplateIdempotentSameLineSiblings(t *testing.T) {
	src := "<template><div><span/></div></template>\n"

	once, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("first Compile() error = %v", err)
	}
	twice, err := Compile(once, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("second Compile() error = %v", err)
	}
	if twice != once {
		t.Errorf("second compile moved annotations:\nfirst:  %q\nsecond: %q", once, twice)
	}
	wantSpan := `<span data-v-inspector-file="src/App.vue" data-v-inspector-line="1" data-v-inspector-column="16"/>`
	if !strings.Contains(twice, wantSpan) {
		t.Errorf("later sibling on the same line drifted:\n%s", twice)
	}
}

func TestCompileTemplateSkipsScriptAndStyle(t *testing.T) {
	src := "<template>\n  <div>x</div>\n</template>\n\n<script>\nexport default { name: 'App' }\n</script>\n\n<style>\n.a < .b { color: red }\n</style>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if n := CountAnnotations(got); n != 1 {
		t.Errorf("CountAnnotations() = %d, want 1", n)
	}
	if !strings.Contains(got, "export default { name: 'App' }") {
		t.Errorf("script body was modified:\n%s", got)
	}
	if !strings.Contains(got, ".a < .b { color: red }") {
		t.Errorf("style body was modified:\n%s", got)
	}
}

func TestCompileTemplateSkipsForeignLang(t *testing.T) {
	src := "<template lang=\"pug\">\ndiv hello\n</template>\n<template>\n  <p>x</p>\n</template>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !strings.Contains(got, "\ndiv hello\n") {
		t.Errorf("pug body was modified:\n%s", got)
	}
	if n := CountAnnotations(got); n != 1 {
		t.Errorf("CountAnnotations() = %d, want 1", n)
	}
	if !strings.Contains(got, `<p data-v-inspector-file=`) {
		t.Errorf("html template after pug block was not annotated:\n%s", got)
	}
}

func TestCompileTemplateHTMLLangIsAnnotated(t *testing.T) {
	src := "<template lang=\"html\">\n  <p>x</p>\n</template>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if n := CountAnnotations(got); n != 1 {
		t.Errorf("CountAnnotations() = %d, want 1", n)
	}
}

func TestCompileTemplateNestedTemplateTag(t *testing.T) {
	src := "<template>\n  <template v-if=\"ok\">\n    <li>a</li>\n  </template>\n</template>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if strings.Contains(got, `<template v-if="ok" data-v-inspector-`) {
		t.Errorf("nested template tag should not be annotated:\n%s", got)
	}
	want := `<li data-v-inspector-file="src/App.vue" data-v-inspector-line="3" data-v-inspector-column="5">`
	if !strings.Contains(got, want) {
		t.Errorf("compiled output missing %q:\n%s", want, got)
	}
}

func TestCompileTemplatePreservesComponentCase(t *testing.T) {
	src := `<template><MyWidget :prop="a"/></template>`

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := `<MyWidget :prop="a" data-v-inspector-file="src/App.vue" data-v-inspector-line="1" data-v-inspector-column="11"/>`
	if !strings.Contains(got, want) {
		t.Errorf("Compile() = %q, want it to contain %q", got, want)
	}
}

func TestCompileTemplateColumnCountsRunes(t *testing.T) {
	src := "<template>\n  <p>héllo <b>x</b></p>\n</template>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := `<b data-v-inspector-file="src/App.vue" data-v-inspector-line="2" data-v-inspector-column="12">`
	if !strings.Contains(got, want) {
		t.Errorf("compiled output missing %q:\n%s", want, got)
	}
}

func TestCompileTemplateEscapesFilePath(t *testing.T) {
	src := `<template><div/></template>`

	got, err := Compile(src, "src/a&b.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(got, `data-v-inspector-file="src/a&amp;b.vue"`) {
		t.Errorf("file path was not attribute-escaped:\n%s", got)
	}
}

func TestCompileTemplateOutsideTemplateUntouched(t *testing.T) {
	src := "<script setup>\nconst n = 1\n</script>\n"

	got, err := Compile(src, "src/App.vue", KindTemplate)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got != src {
		t.Errorf("source without a template block changed:\ngot  %q\nwant %q", got, src)
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		path string
		raw  bool
		kind Kind
		ok   bool
	}{
		{"src/App.vue", false, KindTemplate, true},
		{"src/Button.jsx", false, KindJSX, true},
		{"src/Button.tsx", false, KindJSX, true},
		{"src/Widget.VUE", false, KindTemplate, true},
		{"src/main.ts", false, KindNone, false},
		{"src/App.vue", true, KindNone, false},
		{"index.html", false, KindNone, false},
	}
	for _, tt := range tests {
		kind, ok := Eligible(tt.path, tt.raw)
		if kind != tt.kind || ok != tt.ok {
			t.Errorf("Eligible(%q, %v) = (%v, %v), want (%v, %v)",
				tt.path, tt.raw, kind, ok, tt.kind, tt.ok)
		}
	}
}
