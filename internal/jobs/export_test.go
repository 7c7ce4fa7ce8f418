package jobs

func (j *ReconciliationJob) SetBatchSize(n int) {
	j.batchSize = n
}
