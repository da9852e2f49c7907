// Package config loads the YAML configuration of the tickscan command.
//
// ${VAR} references are expanded from the environment before parsing, and a
// .env file in the working directory is loaded first when present, so
// credentials can stay out of the config file:
//
//	storage:
//	  backend: minio
//	  minio:
//	    endpoint: localhost:9000
//	    access_key: ${MINIO_ACCESS_KEY}
//	    secret_key: ${MINIO_SECRET_KEY}
//	    bucket: market-data
package config
