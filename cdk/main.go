package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type VoleiStackProps struct {
	awscdk.StackProps
}

func NewVoleiStack(scope constructs.Construct, id string, props *VoleiStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	environment := map[string]*string{
		"APP":              jsii.String("prod"),
		"TOURNAMENT_TITLE": jsii.String(envOr("TOURNAMENT_TITLE", "Campeonato de Vôlei")),
		"ADMIN_USER":       jsii.String(envOr("ADMIN_USER", "admin")),
	}
	for _, key := range []string{"ADMIN_PASSWORD_HASH", "DATA_URL", "POSTGRES_DSN", "LOG_LEVEL"} {
		if value := os.Getenv(key); value != "" {
			environment[key] = jsii.String(value)
		}
	}

	lambdaFn := awslambda.NewFunction(stack, jsii.String("VoleiApi"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Handler:     jsii.String("bootstrap"),
		Code:        awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize:  jsii.Number(256),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(20)),
		Environment: &environment,
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("VoleiApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	app := awscdk.NewApp(nil)
	NewVoleiStack(app, "VoleiStack", &VoleiStackProps{})
	app.Synth(nil)
}
