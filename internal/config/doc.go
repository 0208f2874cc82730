// Package config loads domhelper.json.
//
// The file describes the page conventions the helpers rely on and the
// settings of the CLI and preview server.
//
// # Configuration File Structure
//
//	{
//	  "errorElementId": "error-message",
//	  "hiddenClass": "hidden",
//	  "itemTag": "li",
//	  "itemClass": "dynamic-item",
//	  "inputTag": "input",
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "log": {
//	    "level": "debug",
//	    "format": "json"
//	  }
//	}
//
// Every field is optional. Missing fields take the defaults from New.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    return err
//	}
//	h := domhelper.New(doc, domhelper.WithConfig(cfg.Helper()))
package config
