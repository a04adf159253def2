package globalsearch

// OperationID identifies an asynchronous art or track request.
type OperationID int

// artRequests maps in-flight art loads to the record that asked for them.
type artRequests map[OperationID]RecordID

func (t artRequests) put(op OperationID, id RecordID) { t[op] = id }

func (t artRequests) take(op OperationID) (RecordID, bool) {
	id, ok := t[op]
	if ok {
		delete(t, op)
	}
	return id, ok
}

func (t artRequests) clear() { clear(t) }

// trackRequests maps in-flight track materializations to their intent.
type trackRequests map[OperationID]Intent

func (t trackRequests) put(op OperationID, intent Intent) { t[op] = intent }

func (t trackRequests) take(op OperationID) (Intent, bool) {
	intent, ok := t[op]
	if ok {
		delete(t, op)
	}
	return intent, ok
}
