package resources

// queryFailedMessage is the text shown to the user for any failed query.
const queryFailedMessage = "Failed to fetch resources. The model may be unavailable or the query could not be processed."

// QueryError reports a failed resource query. Its message is always the
// user-facing text; the underlying cause is available through Unwrap.
type QueryError struct {
	Provider string
	Err      error
}

func (e *QueryError) Error() string {
	return queryFailedMessage
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
