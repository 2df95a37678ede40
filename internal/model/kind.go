package model

// WorkflowKind names a stateful slot-filling workflow.
type WorkflowKind string

const (
	KindSwap    WorkflowKind = "swap"
	KindLending WorkflowKind = "lending"
	KindStaking WorkflowKind = "staking"
	KindDCA     WorkflowKind = "dca"
)

// StatefulKinds lists every workflow kind that keeps per-conversation state.
func StatefulKinds() []WorkflowKind {
	return []WorkflowKind{KindSwap, KindLending, KindStaking, KindDCA}
}
