package ai

// TaskType hints to the embedding service what a vector will be used for.
// Services that cannot express a hint ignore it.
type TaskType int

const (
	// TaskUnspecified leaves the choice to the service.
	TaskUnspecified TaskType = iota
	// TaskRetrievalDocument marks text that will be stored and searched.
	TaskRetrievalDocument
	// TaskRetrievalQuery marks text used to search stored documents.
	TaskRetrievalQuery
)

// String returns the service-neutral name of the task hint.
func (t TaskType) String() string {
	switch t {
	case TaskRetrievalDocument:
		return "retrieval_document"
	case TaskRetrievalQuery:
		return "retrieval_query"
	default:
		return "unspecified"
	}
}
