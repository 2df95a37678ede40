package router

// Decide resolves the target handler from already-computed per-turn fields.
// Pure function, no I/O. It returns ok=false only when every deterministic
// rule failed and the caller should consult the disambiguator.
//
// Rule order is a cost/latency trade-off: cheap deterministic checks first,
// embedding similarity second, the paid disambiguator call last.
func Decide(s State) (RouteDecision, bool) {
	if len(s.PreflightErrors) > 0 {
		return RouteDecision{
			IntentCategory: s.Category,
			Confidence:     s.Confidence,
			TargetHandler:  HandlerError,
		}, true
	}

	// Sticky session: an active workflow keeps the conversation until it
	// completes or the user explicitly cancels.
	if s.ActiveKind != "" {
		if h, ok := handlerForKind[s.ActiveKind]; ok {
			return RouteDecision{
				IntentCategory: Category(s.ActiveKind),
				Confidence:     1.0,
				TargetHandler:  h,
			}, true
		}
	}

	if s.AwaitingKind != "" {
		if h, ok := handlerForKind[s.AwaitingKind]; ok {
			return RouteDecision{
				IntentCategory:    Category(s.AwaitingKind),
				Confidence:        1.0,
				TargetHandler:     h,
				NeedsConfirmation: true,
			}, true
		}
	}

	if s.Confidence >= HighConfidence {
		return RouteDecision{
			IntentCategory: s.Category,
			Confidence:     s.Confidence,
			TargetHandler:  HandlerFor(s.Category),
		}, true
	}

	// Medium confidence routes for both stateful and stateless categories;
	// stateful workflows recover from a wrong pick by asking a clarifying
	// question, stateless handlers by answering generically.
	if s.Confidence >= LowConfidence {
		return RouteDecision{
			IntentCategory:    s.Category,
			Confidence:        s.Confidence,
			TargetHandler:     HandlerFor(s.Category),
			NeedsConfirmation: true,
		}, true
	}

	if category, ok := keywordRoute(s.Text); ok {
		return RouteDecision{
			IntentCategory: category,
			Confidence:     0.0,
			TargetHandler:  HandlerFor(category),
		}, true
	}

	return RouteDecision{
		IntentCategory: CategoryGeneral,
		Confidence:     s.Confidence,
		TargetHandler:  HandlerDefault,
	}, false
}
