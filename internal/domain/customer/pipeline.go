package customer

import "time"

// AllowedNextSteps returns the stages reachable by a single advance from
// status. The pipeline only moves forward one step at a time: the result is
// exactly one stage for every non-terminal pipeline stage, the first stage
// for an uninitialized status, and empty for the terminal stage and for the
// sleeping bypass (a sleeping customer must be woken first).
func AllowedNextSteps(status Status) []Stage {
	if status == StatusSleeping {
		return nil
	}
	idx := StageIndex(Stage(status))
	if idx < 0 {
		return []Stage{Stages[0]}
	}
	if idx == len(Stages)-1 {
		return nil
	}
	return []Stage{Stages[idx+1]}
}

// LatestReachedStage returns the stage whose recorded timestamp is most
// recent. Recency, not stage order, decides: if a manual sheet edit gives an
// earlier stage a newer timestamp than a later one, the earlier stage wins.
// That matches the stored data and is a known edge case of the heuristic.
func LatestReachedStage(c *Customer, loc *time.Location) (Stage, bool) {
	var (
		latest     Stage
		latestTime time.Time
		found      bool
	)
	for _, stage := range Stages {
		t, ok := ParseTime(c.StageTime(stage), loc)
		if !ok {
			continue
		}
		if !found || t.After(latestTime) || t.Equal(latestTime) {
			latest = stage
			latestTime = t
			found = true
		}
	}
	return latest, found
}

// ReachedStages returns the stages a note operation may target: the current
// stage and every stage before it. While sleeping, the window is capped at
// the latest reached stage, falling back to the first stage when no stage
// timestamp was ever recorded.
func ReachedStages(c *Customer, loc *time.Location) []Stage {
	if c.Status == StatusSleeping {
		latest, ok := LatestReachedStage(c, loc)
		if !ok {
			latest = Stages[0]
		}
		return Stages[:StageIndex(latest)+1]
	}
	idx := StageIndex(Stage(c.Status))
	if idx < 0 {
		idx = 0
	}
	return Stages[:idx+1]
}
