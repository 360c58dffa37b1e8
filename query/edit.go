package query

// AddSelect appends col to the select list unless it is already there.
func (s Spec) AddSelect(col string) Spec {
	out := s.Clone()
	if col != "" && !contains(out.Select, col) {
		out.Select = append(out.Select, col)
	}
	return out
}

// RemoveSelect drops col from the select list.
func (s Spec) RemoveSelect(col string) Spec {
	out := s.Clone()
	sel := out.Select[:0]
	for _, c := range out.Select {
		if c != col {
			sel = append(sel, c)
		}
	}
	out.Select = sel
	return out
}

// AddFilter appends a predicate.
func (s Spec) AddFilter(p Predicate) Spec {
	out := s.Clone()
	out.Filters = append(out.Filters, p)
	return out
}

// RemoveFilter drops the predicate at index i. Out-of-range indices are ignored.
func (s Spec) RemoveFilter(i int) Spec {
	out := s.Clone()
	if i < 0 || i >= len(out.Filters) {
		return out
	}
	out.Filters = append(out.Filters[:i], out.Filters[i+1:]...)
	return out
}

// AddGroup appends a group column unless it is already grouped on.
func (s Spec) AddGroup(col string) Spec {
	out := s.Clone()
	if col != "" && !contains(out.Group, col) {
		out.Group = append(out.Group, col)
	}
	return out
}

// RemoveGroup drops the group column at index i. Out-of-range indices are ignored.
func (s Spec) RemoveGroup(i int) Spec {
	out := s.Clone()
	if i < 0 || i >= len(out.Group) {
		return out
	}
	out.Group = append(out.Group[:i], out.Group[i+1:]...)
	return out
}

// SetAggregateFunc changes the aggregate function. An order on the old
// aggregate alias follows the aggregate to its new alias.
func (s Spec) SetAggregateFunc(fn AggFunc) Spec {
	out := s.Clone()
	out.Aggregate.Func = fn
	return out.resyncOrder()
}

// SetAggregateColumn changes the aggregated column. An order on the old
// aggregate alias follows the aggregate to its new alias.
func (s Spec) SetAggregateColumn(col string) Spec {
	out := s.Clone()
	out.Aggregate.Column = col
	return out.resyncOrder()
}

// SetOrder sets the order key and direction. Ordering on the aggregated
// column orders by the aggregate alias instead.
func (s Spec) SetOrder(key string, dir Direction) Spec {
	out := s.Clone()
	if out.Aggregate.Active() && key != "" && out.Aggregate.Column == key {
		key = out.Aggregate.Alias()
	}
	out.Order = Order{Key: key, Dir: dir}
	return out
}

// ClearOrder removes the ordering.
func (s Spec) ClearOrder() Spec {
	out := s.Clone()
	out.Order = Order{}
	return out
}

func (s Spec) resyncOrder() Spec {
	if s.Order.IsSet() && IsAlias(s.Order.Key) && s.Aggregate.Active() {
		s.Order.Key = s.Aggregate.Alias()
	}
	return s
}
