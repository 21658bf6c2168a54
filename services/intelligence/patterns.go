package intelligence

import "regexp"

// intentPatterns are matched against the lower-cased message. Several intents share
// trigger words ("menu" for order_food and check_menu, "cancel" for cancel and deny);
// the highest total hit count wins and ties fall back to IntentOrder.
var intentPatterns = map[Intent][]string{
	IntentGreeting: {
		`hi\b`, `hello\b`, `hey\b`, `howdy\b`, `greetings`,
		`good morning`, `good afternoon`, `good evening`,
	},
	IntentFarewell: {
		`bye\b`, `goodbye`, `see you`, `farewell`,
		`have a good day`, `until next time`,
	},
	IntentOrderFood: {
		`order\b`, `get food`, `place an order`, `buy food`,
		`food delivery`, `order food`, `food order`, `want to eat`,
		`like to order`, `would like to order`, `hungry`,
		`menu`, `what do you have`, `what can i order`,
	},
	IntentBookTable: {
		`book\b`, `reserve\b`, `reservation`, `table for`,
		`book a table`, `reserve a table`, `make a reservation`,
		`table booking`, `get a table`, `have a table`,
	},
	IntentCheckHours: {
		`hours`, `open`, `close`, `opening time`, `closing time`,
		`when (are|do) you open`, `when (are|do) you close`,
		`business hours`, `schedule`,
	},
	IntentCheckMenu: {
		`menu`, `food options`, `what do you serve`, `dishes`,
		`food list`, `what can i eat`, `what do you have`,
	},
	IntentOrderStatus: {
		`status`, `where is my order`, `order status`,
		`track (my|the) order`, `when will (my|the) order arrive`,
	},
	IntentCancel: {
		`cancel`, `remove`, `delete`,
	},
	IntentHelp: {
		`help`, `assist`, `support`, `how (can|do) (i|you)`,
		`what can you do`,
	},
	IntentAffirm: {
		`yes`, `yeah`, `yep`, `correct`, `right`,
		`that's right`, `sounds good`, `okay`, `ok`,
	},
	IntentDeny: {
		`no`, `nope`, `not`, `don't`, `cancel`, `wrong`,
	},
}

const weekdayAlternation = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

var entityPatterns = []struct {
	kind     EntityKind
	patterns []string
	group    int // capture group to keep; 0 keeps the whole match
	keepCase bool
}{
	{
		kind: EntityDate,
		patterns: []string{
			`day after tomorrow`, `today`, `tomorrow`,
			`next (?:` + weekdayAlternation + `)`,
			`on (?:` + weekdayAlternation + `)`,
			`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`,
			`\b\d{1,2}[/-]\d{1,2}\b`,
			`\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?) \d{1,2}\b`,
		},
	},
	{
		kind: EntityTime,
		patterns: []string{
			`\b\d{1,2}:\d{2}(?:\s*(?:am|pm)\b)?`,
			`\b\d{1,2}\s?(?:am|pm)\b`,
			`\b\d{1,2}\s?o'?clock(?:\s*(?:am|pm)\b)?`,
			`noon`, `midnight`,
			`(?:morning|afternoon|evening|night)`,
			`breakfast`, `lunch`, `dinner`, `brunch`,
		},
	},
	{
		kind: EntityNumber,
		patterns: []string{
			`\d+`, `\bone\b`, `\btwo\b`, `\bthree\b`, `\bfour\b`, `\bfive\b`,
			`\bsix\b`, `\bseven\b`, `\beight\b`, `\bnine\b`, `\bten\b`,
			`\beleven\b`, `\btwelve\b`, `\bdozen\b`, `\bcouple\b`, `\bfew\b`, `\bseveral\b`,
		},
	},
	{
		kind: EntityPhone,
		patterns: []string{
			`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`,
			`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}\b`,
		},
	},
	{
		kind:     EntityEmail,
		patterns: []string{`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`},
	},
	{
		kind:     EntityName,
		patterns: []string{`\b(?:my name is|i am|this is)\s+([a-z]+(?: [a-z]+)?)`},
		group:    1,
		keepCase: true,
	},
	{
		kind: EntitySpecialRequest,
		patterns: []string{
			`special requests?\s*[:\-]\s*([^.!?\n]+)`,
			`\bnote\s*:\s*([^.!?\n]+)`,
			`\b(allergic to [^.!?\n,]+)`,
		},
		group:    1,
		keepCase: true,
	},
}

type intentRule struct {
	intent   Intent
	patterns []*regexp.Regexp
}

type compiledEntity struct {
	kind     EntityKind
	patterns []*regexp.Regexp
	group    int
	keepCase bool
}

var (
	intentRules      []intentRule
	compiledEntities []compiledEntity
)

func init() {
	for _, intent := range IntentOrder {
		rule := intentRule{intent: intent}
		for _, p := range intentPatterns[intent] {
			rule.patterns = append(rule.patterns, regexp.MustCompile(p))
		}
		intentRules = append(intentRules, rule)
	}

	for _, def := range entityPatterns {
		ce := compiledEntity{kind: def.kind, group: def.group, keepCase: def.keepCase}
		for _, p := range def.patterns {
			ce.patterns = append(ce.patterns, regexp.MustCompile(`(?i)`+p))
		}
		compiledEntities = append(compiledEntities, ce)
	}
}
