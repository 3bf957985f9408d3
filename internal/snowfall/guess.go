package snowfall

// ResolveClosest finds every player whose guess is nearest to target, in
// input order. Distances are whole calendar days.
func ResolveClosest(guesses []Guess, target Date) (GuessResolution, error) {
	if len(guesses) == 0 {
		return GuessResolution{}, ErrNoGuesses
	}

	best := -1
	var winners []string

	for _, g := range guesses {
		dist := absInt(g.Date.DaysUntil(target))
		switch {
		case best < 0 || dist < best:
			best = dist
			winners = []string{g.Player}
		case dist == best:
			winners = append(winners, g.Player)
		}
	}

	return GuessResolution{
		Target:       target,
		Winners:      winners,
		DistanceDays: best,
	}, nil
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
