package dataset

// AgeBucket groups patients for the bar plot. Buckets are derived from Age and
// never stored.
type AgeBucket int

const (
	Children AgeBucket = iota
	YoungAdults
	Adults
	OlderAdults
	Elderly
)

var bucketLabels = [...]string{"Children", "Young Adults", "Adults", "Older Adults", "Elderly"}

// AllBuckets returns the buckets in display order.
func AllBuckets() []AgeBucket {
	return []AgeBucket{Children, YoungAdults, Adults, OlderAdults, Elderly}
}

// BucketForAge maps every integer age to exactly one bucket. Upper bounds are
// inclusive: 12, 24, 64, 74; anything above 74 is Elderly.
func BucketForAge(age int) AgeBucket {
	switch {
	case age <= 12:
		return Children
	case age <= 24:
		return YoungAdults
	case age <= 64:
		return Adults
	case age <= 74:
		return OlderAdults
	default:
		return Elderly
	}
}

func (b AgeBucket) Label() string {
	if b < Children || b > Elderly {
		return "Unknown"
	}
	return bucketLabels[b]
}

// Abbrev is the short name used in the bar plot's proportion panel.
func (b AgeBucket) Abbrev() string {
	switch b {
	case YoungAdults:
		return "YA"
	case OlderAdults:
		return "OA"
	default:
		return b.Label()
	}
}

// Range returns the inclusive age range label, e.g. "13-24" or "75+".
func (b AgeBucket) Range() string {
	switch b {
	case Children:
		return "0-12"
	case YoungAdults:
		return "13-24"
	case Adults:
		return "25-64"
	case OlderAdults:
		return "65-74"
	case Elderly:
		return "75+"
	}
	return ""
}
