package common

const (
	RedisStreamSchedulerTaskExecution = "schedule.task.execution"
	RedisStreamReportGenerate         = "report.generate"

	RedisStreamGroup    = "research-group"
	RedisStreamConsumer = "research-consumer"
)
