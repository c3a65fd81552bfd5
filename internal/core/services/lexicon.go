package services

// Fixed vocabularies used by the extractor. Kept small and auditable;
// keyword extraction quality depends on the stop list staying in sync
// with the classifier vocabularies in classifier.go.

// stopWords are excluded from keyword extraction.
var stopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "and": true, "any": true, "are": true,
	"been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "but": true, "can": true, "could": true, "did": true,
	"does": true, "doing": true, "down": true, "during": true, "each": true,
	"few": true, "for": true, "from": true, "further": true, "have": true,
	"having": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "into": true, "its": true, "itself": true,
	"just": true, "more": true, "most": true, "not": true, "now": true,
	"off": true, "once": true, "only": true, "other": true, "our": true,
	"ours": true, "out": true, "over": true, "own": true, "same": true,
	"she": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "the": true, "their": true, "theirs": true, "them": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "under": true, "until": true, "very": true,
	"was": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "whom": true, "why": true,
	"will": true, "with": true, "would": true, "your": true, "yours": true,
	"need": true, "want": true, "like": true, "make": true, "made": true,
}

// languageMarkers map a language code to high-frequency function words.
// The dominant marker count decides the detected language.
var languageMarkers = map[string][]string{
	"en": {"the", "and", "is", "of", "to", "in", "that", "it", "for", "with", "was", "this", "are", "about", "need"},
	"es": {"el", "los", "las", "que", "y", "en", "un", "una", "por", "con", "para", "está", "como", "pero"},
	"fr": {"les", "des", "une", "est", "et", "dans", "pour", "qui", "sur", "avec", "pas", "vous", "mais"},
	"de": {"der", "die", "das", "und", "ist", "nicht", "ein", "eine", "mit", "für", "auf", "von", "sich", "auch"},
}

// languageOrder fixes the tie-break order for language detection.
var languageOrder = []string{"en", "es", "fr", "de"}

// positiveWords is the sentiment lexicon for positive polarity.
var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "amazing": true,
	"wonderful": true, "fantastic": true, "love": true, "loved": true,
	"happy": true, "glad": true, "best": true, "awesome": true,
	"nice": true, "perfect": true, "enjoy": true, "enjoyed": true,
	"success": true, "successful": true, "win": true, "won": true,
	"positive": true, "helpful": true, "beautiful": true, "brilliant": true,
	"delighted": true, "pleased": true, "impressive": true, "thanks": true,
	"thank": true, "improved": true, "improvement": true, "progress": true,
}

// negativeWords is the sentiment lexicon for negative polarity.
var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "hated": true, "sad": true, "angry": true,
	"worst": true, "poor": true, "fail": true, "failed": true,
	"failure": true, "problem": true, "problems": true, "issue": true,
	"issues": true, "broken": true, "wrong": true, "difficult": true,
	"negative": true, "unhappy": true, "disappointed": true, "disappointing": true,
	"annoying": true, "frustrating": true, "frustrated": true, "lost": true,
	"delay": true, "delayed": true, "error": true, "errors": true,
}

// actionVerbs trigger action item extraction when present in a sentence.
var actionVerbs = []string{
	"call", "email", "send", "buy", "schedule", "book", "complete", "finish", "review",
}

// urgencyWords escalate analysis priority to high.
var urgencyWords = []string{
	"urgent", "asap", "immediately", "deadline", "critical", "emergency",
}
