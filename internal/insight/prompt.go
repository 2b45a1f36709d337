package insight

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write brief, friendly commentary for a personality quiz. You explain how a well-known person's publicly known behaviour illustrates a four-letter personality type. Stay factual and respectful; never claim the person took a test.`

func buildUserMessage(req Request) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Type: %s\n", req.TypeCode))
	b.WriteString(fmt.Sprintf("Person: %s\n", req.Name))
	b.WriteString(fmt.Sprintf("Profession: %s\n", req.Profession))

	b.WriteString(`
Instructions:
1. In 2-4 sentences, describe how this person's work or public conduct reflects the traits of the type above.
2. Mention one concrete, well-known example.
3. Address the reader directly in the last sentence, relating the example to their own result.
4. Plain text only. No markdown, no lists.`)

	return b.String()
}
