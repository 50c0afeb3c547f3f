package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a senior graphic designer who creates print-ready covers for Thai civil-service exam preparation books."

// buildPrompt は表紙生成用の指示文を組み立てます。
// 色調が空の場合は組織名から配色を決めさせます。
func buildPrompt(position, organization, colorTone string) string {
	tone := strings.TrimSpace(colorTone)
	if tone == "" {
		tone = fmt.Sprintf("choose a color palette that matches the official identity of %q", organization)
	} else {
		tone = fmt.Sprintf("use %q as the dominant color tone", tone)
	}

	var b strings.Builder
	b.WriteString("Design a modern 3D-styled book cover for an exam preparation guide.\n")
	fmt.Fprintf(&b, "- Main title (largest text): %q\n", position)
	fmt.Fprintf(&b, "- Organization name (secondary text): %q\n", organization)
	b.WriteString("- Place the attached logo image at the top of the cover without altering it.\n")
	fmt.Fprintf(&b, "- Colors: %s.\n", tone)
	b.WriteString("- Render all Thai text exactly as written, with correct spelling and vowel marks.\n")
	b.WriteString("- Portrait layout, clean background, no extra text or watermarks.")
	return b.String()
}
