package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tyler180/fantasypros-weekly/internal/app/weekly"
)

func main() {
	lambda.Start(weekly.LambdaEntrypoint)
}
