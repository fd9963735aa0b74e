package command

// Intent is the classification label chosen by the language model.
type Intent string

const (
	IntentScheduleMeeting Intent = "schedule_meeting"
	IntentCreateTask      Intent = "create_task"
	IntentCompleteTask    Intent = "complete_task"
	IntentSummarizeEmail  Intent = "summarize_email"
	IntentDraftEmail      Intent = "draft_email"
)

// Intents lists every intent the classifier may choose, in prompt order.
var Intents = []Intent{
	IntentScheduleMeeting,
	IntentCreateTask,
	IntentCompleteTask,
	IntentSummarizeEmail,
	IntentDraftEmail,
}

// Classification is the parsed classifier output.
type Classification struct {
	Intent Intent
	// Raw is the intent value exactly as the model produced it.
	Raw     any
	Details any
	// Object is the whole parsed model output; absent keys stay absent.
	Object map[string]any
}
