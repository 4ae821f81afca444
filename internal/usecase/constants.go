package usecase

// Replay modes reported to metrics.
const (
	ReplayModeAll          = "all"
	ReplayModeToDate       = "to_date"
	ReplayModeWithSnapshot = "with_snapshot"
	ReplayModeSnapshot     = "snapshot"
)

// Reconstruction kinds reported to metrics.
const (
	ReconstructionMember      = "member_balance"
	ReconstructionFund        = "fund_balance"
	ReconstructionHistory     = "transaction_history"
	ReconstructionFundHistory = "fund_balance_history"
	ReconstructionProperty    = "property_snapshot"
	ReconstructionSummary     = "transaction_summary"
	ReconstructionAging       = "member_aging"
)

// DefaultSnapshotCreatedBy is recorded on snapshots taken by the auto policy.
const DefaultSnapshotCreatedBy = "system"
