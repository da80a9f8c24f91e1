package catalog

var defaultCatalog = MustNew(defaultResources, defaultActions)

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

var defaultResources = []Resource{
	{ID: "s3", Name: "S3 (Simple Storage Service)", Description: "Object storage service", Icon: "🪣"},
	{ID: "ec2", Name: "EC2 (Elastic Compute Cloud)", Description: "Virtual server instances", Icon: "🖥️"},
	{ID: "lambda", Name: "Lambda", Description: "Serverless computing service", Icon: "⚡"},
	{ID: "dynamodb", Name: "DynamoDB", Description: "NoSQL database service", Icon: "🗄️"},
	{ID: "cloudwatch", Name: "CloudWatch", Description: "Monitoring and logging service", Icon: "📊"},
	{ID: "sns", Name: "SNS (Simple Notification Service)", Description: "Message notification service", Icon: "📢"},
	{ID: "sqs", Name: "SQS (Simple Queue Service)", Description: "Message queue service", Icon: "📬"},
}

var defaultActions = map[string][]Action{
	"s3": {
		{
			ID:          "s3-list-objects",
			Name:        "List Objects",
			Description: "List objects in S3 bucket",
			Category:    CategoryRead,
			Permissions: []string{"s3:ListBucket"},
			DependsOn:   []string{"s3:GetBucketLocation"},
		},
		{
			ID:          "s3-read-objects",
			Name:        "Read Objects",
			Description: "Read objects from S3 bucket",
			Category:    CategoryRead,
			Permissions: []string{"s3:GetObject"},
			DependsOn:   []string{"s3:ListBucket", "s3:GetBucketLocation"},
		},
		{
			ID:          "s3-write-objects",
			Name:        "Upload/Modify Objects",
			Description: "Upload and modify objects in S3 bucket",
			Category:    CategoryWrite,
			Permissions: []string{"s3:PutObject", "s3:PutObjectAcl"},
		},
		{
			ID:          "s3-delete-objects",
			Name:        "Delete Objects",
			Description: "Delete objects from S3 bucket",
			Category:    CategoryWrite,
			Permissions: []string{"s3:DeleteObject"},
			DependsOn:   []string{"s3:ListBucket"},
		},
		{
			ID:          "s3-manage-buckets",
			Name:        "Manage Buckets",
			Description: "Create, delete, and configure S3 buckets",
			Category:    CategoryAdmin,
			Permissions: []string{"s3:CreateBucket", "s3:DeleteBucket", "s3:PutBucketPolicy", "s3:GetBucketPolicy"},
		},
	},
	"ec2": {
		{
			ID:          "ec2-view-instances",
			Name:        "View Instances",
			Description: "View EC2 instance information",
			Category:    CategoryRead,
			Permissions: []string{"ec2:DescribeInstances", "ec2:DescribeInstanceStatus"},
		},
		{
			ID:          "ec2-control-instances",
			Name:        "Control Instances",
			Description: "Start, stop, and restart EC2 instances",
			Category:    CategoryWrite,
			Permissions: []string{"ec2:StartInstances", "ec2:StopInstances", "ec2:RebootInstances"},
			DependsOn:   []string{"ec2:DescribeInstances"},
		},
		{
			ID:          "ec2-manage-instances",
			Name:        "Manage Instances",
			Description: "Create and terminate EC2 instances",
			Category:    CategoryAdmin,
			Permissions: []string{"ec2:RunInstances", "ec2:TerminateInstances"},
			DependsOn:   []string{"ec2:DescribeInstances", "ec2:DescribeImages", "ec2:DescribeSecurityGroups"},
		},
	},
	"lambda": {
		{
			ID:          "lambda-view-functions",
			Name:        "View Functions",
			Description: "List and view Lambda function information",
			Category:    CategoryRead,
			Permissions: []string{"lambda:ListFunctions", "lambda:GetFunction"},
		},
		{
			ID:          "lambda-invoke-functions",
			Name:        "Invoke Functions",
			Description: "Execute Lambda functions",
			Category:    CategoryWrite,
			Permissions: []string{"lambda:InvokeFunction"},
			DependsOn:   []string{"lambda:GetFunction"},
		},
		{
			ID:          "lambda-manage-functions",
			Name:        "Manage Functions",
			Description: "Create, modify, and delete Lambda functions",
			Category:    CategoryAdmin,
			Permissions: []string{"lambda:CreateFunction", "lambda:UpdateFunctionCode", "lambda:DeleteFunction"},
			DependsOn:   []string{"iam:PassRole"},
		},
	},
	"dynamodb": {
		{
			ID:          "dynamodb-read-data",
			Name:        "Read Data",
			Description: "Read and query data from DynamoDB tables",
			Category:    CategoryRead,
			Permissions: []string{"dynamodb:GetItem", "dynamodb:Query", "dynamodb:Scan"},
		},
		{
			ID:          "dynamodb-write-data",
			Name:        "Write Data",
			Description: "Create and modify data in DynamoDB tables",
			Category:    CategoryWrite,
			Permissions: []string{"dynamodb:PutItem", "dynamodb:UpdateItem"},
		},
		{
			ID:          "dynamodb-delete-data",
			Name:        "Delete Data",
			Description: "Delete data from DynamoDB tables",
			Category:    CategoryWrite,
			Permissions: []string{"dynamodb:DeleteItem"},
		},
		{
			ID:          "dynamodb-manage-tables",
			Name:        "Manage Tables",
			Description: "Create, modify, and delete DynamoDB tables",
			Category:    CategoryAdmin,
			Permissions: []string{"dynamodb:CreateTable", "dynamodb:UpdateTable", "dynamodb:DeleteTable", "dynamodb:DescribeTable"},
		},
	},
	"cloudwatch": {
		{
			ID:          "cloudwatch-view-metrics",
			Name:        "View Metrics",
			Description: "View CloudWatch metrics",
			Category:    CategoryRead,
			Permissions: []string{"cloudwatch:GetMetricStatistics", "cloudwatch:ListMetrics"},
		},
		{
			ID:          "cloudwatch-manage-alarms",
			Name:        "Manage Alarms",
			Description: "Create, modify, and delete CloudWatch alarms",
			Category:    CategoryWrite,
			Permissions: []string{"cloudwatch:PutMetricAlarm", "cloudwatch:DeleteAlarms"},
			DependsOn:   []string{"cloudwatch:DescribeAlarms"},
		},
		{
			ID:          "cloudwatch-manage-logs",
			Name:        "Manage Logs",
			Description: "Manage CloudWatch logs",
			Category:    CategoryWrite,
			Permissions: []string{"logs:CreateLogGroup", "logs:CreateLogStream", "logs:PutLogEvents"},
		},
		{
			ID:          "cloudwatch-manage-dashboards",
			Name:        "Manage Dashboards",
			Description: "Create, modify, and delete CloudWatch dashboards",
			Category:    CategoryAdmin,
			Permissions: []string{"cloudwatch:PutDashboard", "cloudwatch:DeleteDashboards"},
			DependsOn:   []string{"cloudwatch:GetDashboard", "cloudwatch:ListDashboards"},
		},
	},
	"sns": {
		{
			ID:          "sns-view-topics",
			Name:        "View Topics",
			Description: "List SNS topics and read their attributes",
			Category:    CategoryRead,
			Permissions: []string{"sns:ListTopics", "sns:GetTopicAttributes"},
		},
		{
			ID:          "sns-publish-messages",
			Name:        "Publish Messages",
			Description: "Publish messages to SNS topics",
			Category:    CategoryWrite,
			Permissions: []string{"sns:Publish"},
			DependsOn:   []string{"sns:GetTopicAttributes"},
		},
		{
			ID:          "sns-manage-subscriptions",
			Name:        "Manage Subscriptions",
			Description: "Manage SNS topic subscriptions",
			Category:    CategoryWrite,
			Permissions: []string{"sns:Subscribe", "sns:Unsubscribe", "sns:ConfirmSubscription"},
			DependsOn:   []string{"sns:ListSubscriptionsByTopic"},
		},
		{
			ID:          "sns-manage-topics",
			Name:        "Manage Topics",
			Description: "Create, modify, and delete SNS topics",
			Category:    CategoryAdmin,
			Permissions: []string{"sns:CreateTopic", "sns:DeleteTopic", "sns:SetTopicAttributes"},
		},
	},
	"sqs": {
		{
			ID:          "sqs-receive-messages",
			Name:        "Receive Messages",
			Description: "Receive and delete messages from SQS queues",
			Category:    CategoryRead,
			Permissions: []string{"sqs:ReceiveMessage", "sqs:DeleteMessage", "sqs:GetQueueAttributes"},
		},
		{
			ID:          "sqs-send-messages",
			Name:        "Send Messages",
			Description: "Send messages to SQS queues",
			Category:    CategoryWrite,
			Permissions: []string{"sqs:SendMessage", "sqs:GetQueueUrl"},
		},
		{
			ID:          "sqs-manage-queues",
			Name:        "Manage Queues",
			Description: "Create, modify, and delete SQS queues",
			Category:    CategoryAdmin,
			Permissions: []string{"sqs:CreateQueue", "sqs:DeleteQueue", "sqs:SetQueueAttributes"},
		},
	},
}
