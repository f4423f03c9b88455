package models

// FetchOutcome carries either a snapshot or a classified error for one
// location. It propagates partial failure through fan-out without raising;
// exactly one of Snapshot/Err is meaningful.
type FetchOutcome struct {
	Query    LocationQuery
	Snapshot *ConditionsSnapshot
	Err      error
}

// OK reports whether the fetch produced a snapshot.
func (o FetchOutcome) OK() bool {
	return o.Err == nil && o.Snapshot != nil
}

// Kind returns the error classification, KindNone on success.
func (o FetchOutcome) Kind() ErrorKind {
	if o.OK() {
		return KindNone
	}
	return KindOf(o.Err)
}

// SuccessOutcome wraps a snapshot.
func SuccessOutcome(q LocationQuery, s ConditionsSnapshot) FetchOutcome {
	return FetchOutcome{Query: q, Snapshot: &s}
}

// FailureOutcome wraps a classified error.
func FailureOutcome(q LocationQuery, err error) FetchOutcome {
	return FetchOutcome{Query: q, Err: err}
}
