package ook

// Validate checks a candidate transmission against the caller contract
// and the timing/size limits, in that order. On success it returns the
// pulses copied into a bounded train; the input slice is not retained.
//
// The cumulative-time check covers a single pass over the train only.
// It is deliberately not multiplied by repeats: a train that fits one
// pass can still hit the wall-clock budget mid-transmission, where the
// controller truncates the remaining repeats instead of rejecting.
func Validate(pin int, pulses []int, repeats int) (*PulseTrain, error) {
	if pin < MinGPIO || pin > MaxGPIO {
		return nil, &ArgumentError{Field: "gpio", Value: pin}
	}
	if repeats < 1 || repeats > MaxTxRepeats {
		return nil, &ArgumentError{Field: "repeats", Value: repeats}
	}

	n := len(pulses)
	if n < 1 || n > MaxPulseCount {
		return nil, &PolicyError{Kind: InvalidPulseCount, Index: -1}
	}
	if n%2 != 0 {
		// An odd count cannot represent complete HIGH/LOW pairs.
		return nil, &PolicyError{Kind: PulseTrainOutOfOrder, Index: -1}
	}

	train := &PulseTrain{}
	var txTime uint64 // running single-pass sum, microseconds
	for i, p := range pulses {
		if p <= 0 || p > MaxPulseLength {
			return nil, &PolicyError{Kind: InvalidPulseLength, Index: i}
		}
		train.pulses[i] = uint32(p)
		txTime += uint64(p)
		if txTime > MaxTxTime*1000 {
			return nil, &PolicyError{Kind: InvalidTxTime, Index: i}
		}
	}
	train.count = n
	return train, nil
}
