package compare

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var inaudible = regexp.MustCompile(`(?i)\binaudible\b[.,;:!?"'\-]*`)

// expanded forms that are folded into the contraction a transcriber is
// likely to produce. Keys are already normalised.
var contractions = map[string]string{
	"they are": "theyre", "we are": "were", "you are": "youre", "i am": "im",
	"do not": "dont", "does not": "doesnt", "did not": "didnt", "is not": "isnt",
	"are not": "arent", "was not": "wasnt", "were not": "werent", "have not": "havent",
	"has not": "hasnt", "had not": "hadnt", "will not": "wont", "would not": "wouldnt",
	"should not": "shouldnt", "could not": "couldnt", "cannot": "cant", "can not": "cant",
	"it is": "its", "it will": "itll", "that is": "thats", "there is": "theres",
	"what is": "whats", "who is": "whos", "let us": "lets",
	"i will": "ill", "you will": "youll", "he will": "hell", "she will": "shell",
	"we will": "well", "they will": "theyll",
	"i have": "ive", "you have": "youve", "we have": "weve", "they have": "theyve",
	"should have": "shouldve", "would have": "wouldve", "could have": "couldve",
	"might have": "mightve", "must have": "mustve",
	"i would": "id", "you would": "youd", "he would": "hed", "she would": "shed",
	"we would": "wed", "they would": "theyd",
	"i had": "id", "you had": "youd", "he had": "hed", "she had": "shed",
	"we had": "wed", "they had": "theyd",
}

// compounds are split so "classroom" and "class room" compare equal.
var compounds = map[string]string{
	"coldblooded": "cold blooded", "warmblooded": "warm blooded", "toadstool": "toad stool",
	"bullfrog": "bull frog", "tadpole": "tad pole", "treefrog": "tree frog",
	"springpeeper": "spring peeper", "woodfrog": "wood frog", "spadefoot": "spade foot",
	"newtlike": "newt like", "frogspawn": "frog spawn", "pondweed": "pond weed",
	"nighttime": "night time", "seethrough": "see through", "waterhole": "water hole",
	"rainforest": "rain forest", "sunbaked": "sun baked", "backbone": "back bone",
	"eggsac": "egg sac", "overwinter": "over winter", "underwater": "under water",
	"daylight": "day light", "earthworm": "earth worm", "insectlike": "insect like",
	"mouthpart": "mouth part", "tailfin": "tail fin", "webbedfeet": "webbed feet",
	"webbedfoot": "webbed foot",
	"notebook": "note book", "blackboard": "black board", "classroom": "class room",
	"sunflower": "sun flower", "football": "foot ball", "basketball": "basket ball",
	"baseball": "base ball", "playground": "play ground", "schoolyard": "school yard",
	"lunchbox": "lunch box", "toothbrush": "tooth brush", "hairbrush": "hair brush",
	"bedroom": "bed room", "bathroom": "bath room", "livingroom": "living room",
	"diningroom": "dining room", "bookshelf": "book shelf", "bookshelves": "book shelves",
	"snowman": "snow man", "raincoat": "rain coat", "fireman": "fire man",
	"policeman": "police man", "mailbox": "mail box", "sandbox": "sand box",
	"doghouse": "dog house", "catfish": "cat fish", "goldfish": "gold fish",
	"starfish": "star fish", "cupcake": "cup cake", "birthdaycake": "birthday cake",
	"pancake": "pan cake", "cheesecake": "cheese cake", "popcorn": "pop corn",
	"peanutbutter": "peanut butter", "strawberry": "straw berry", "blueberry": "blue berry",
	"raspberry": "rasp berry", "blackberry": "black berry", "greenhouse": "green house",
	"lighthouse": "light house", "wheelchair": "wheel chair", "newspaper": "news paper",
	"airport": "air port", "rainbow": "rain bow", "moonlight": "moon light",
	"sunlight": "sun light", "starlight": "star light", "daydream": "day dream",
	"nightmare": "night mare", "overcoat": "over coat", "underdog": "under dog",
	"overhead": "over head", "underfoot": "under foot", "upstairs": "up stairs",
	"downstairs": "down stairs", "outdoors": "out doors", "indoors": "in doors",
	"outfield": "out field", "infield": "in field", "outlaw": "out law",
	"inlet": "in let", "outlet": "out let", "upset": "up set", "downpour": "down pour",
	"outcome": "out come", "income": "in come", "outbreak": "out break",
	"input": "in put", "output": "out put", "outlook": "out look", "insight": "in sight",
	"oversight": "over sight", "oversee": "over see", "overdo": "over do", "undo": "un do",
	"redo": "re do", "preview": "pre view", "review": "re view", "replay": "re play",
	"retake": "re take", "rebuild": "re build", "recycle": "re cycle",
	"recharge": "re charge", "rearrange": "re arrange", "reappear": "re appear",
	"reapply": "re apply", "reconnect": "re connect", "reconsider": "re consider",
	"reconstruct": "re construct", "recount": "re count", "recover": "re cover",
	"recreate": "re create", "redefine": "re define", "rediscover": "re discover",
	"reenter": "re enter", "refill": "re fill", "refocus": "re focus",
	"refresh": "re fresh", "regain": "re gain", "regrow": "re grow", "rehash": "re hash",
	"reheat": "re heat", "rejoin": "re join", "relive": "re live", "remake": "re make",
	"rematch": "re match", "remove": "re move", "rename": "re name", "renew": "re new",
	"reopen": "re open", "replace": "re place", "report": "re port", "resend": "re send",
	"reset": "re set", "resign": "re sign", "resist": "re sist", "resolve": "re solve",
	"resort": "re sort", "resource": "re source", "respect": "re spect",
	"respond": "re spond", "restart": "re start", "restore": "re store",
	"restrict": "re strict", "result": "re sult", "resume": "re sume", "retell": "re tell",
	"retire": "re tire", "return": "re turn", "reuse": "re use", "reveal": "re veal",
	"revenge": "re venge", "reverse": "re verse", "revise": "re vise",
	"revisit": "re visit", "revoke": "re voke", "reward": "re ward", "rewind": "re wind",
	"rewrite": "re write",
}

var lower = cases.Lower(language.Und)

// NormalizeWord applies NFKC, drops every Unicode punctuation rune and lower
// cases the result.
func NormalizeWord(word string) string {
	word = norm.NFKC.String(word)
	word = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, word)
	return lower.String(word)
}

// CleanText removes "inaudible" markers and any punctuation stuck to them.
func CleanText(text string) string {
	return inaudible.ReplaceAllString(text, "")
}

// Words runs the whole pipeline: marker removal, normalisation, contraction
// folding and compound splitting. The result never holds empty words.
func Words(text string) []string {
	raw := strings.Fields(CleanText(text))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		// NFKC maps some runes to spaces, so one field can become several.
		words = append(words, strings.Fields(NormalizeWord(w))...)
	}
	return splitCompounds(foldContractions(words))
}

// foldContractions replaces expanded two-word forms in one left-to-right
// pass; a folded pair is never reconsidered.
func foldContractions(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		if c, ok := contractions[words[i]]; ok {
			out = append(out, c)
			continue
		}
		if i+1 < len(words) {
			if c, ok := contractions[words[i]+" "+words[i+1]]; ok {
				out = append(out, c)
				i++
				continue
			}
		}
		out = append(out, words[i])
	}
	return out
}

func splitCompounds(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if split, ok := compounds[w]; ok {
			out = append(out, strings.Fields(split)...)
			continue
		}
		out = append(out, w)
	}
	return out
}
