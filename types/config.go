package types

import (
	"mangatan.com/yomitan/logger"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path"
	"strings"
	"sync"
)

// ProfileDictionary is one dictionary row declared in a profile file. It seeds
// the live registry; runtime toggles are not written back to the file.
type ProfileDictionary struct {
	ID       int64  `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Priority int64  `yaml:"priority" json:"priority"`
}

type Profile struct {
	Name         string              `json:"name"`
	FilePath     string              `json:"file_path"`
	Language     string              `yaml:"language" json:"language"`
	Dictionaries []ProfileDictionary `yaml:"dictionaries" json:"dictionaries"`
}

func LoadProfiles(dirPath string) ([]Profile, error) {
	ymtLogger := logger.NewLogger("LoadProfiles")

	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	profileChan := make(chan Profile, len(files))
	for _, f := range files {
		// Skip dirs and non-yaml files
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}

		wg.Add(1)
		go func(file os.FileInfo) {
			defer wg.Done()
			profile := Profile{
				Name:     strings.Split(file.Name(), ".yaml")[0],
				FilePath: path.Join(dirPath, file.Name()),
			}
			buf, err := ioutil.ReadFile(profile.FilePath)
			if err != nil {
				ymtLogger.Err(err)
				return
			}
			if err := yaml.Unmarshal(buf, &profile); err != nil {
				ymtLogger.Err(err)
				return
			}

			profileChan <- profile
		}(f)
	}

	go func() {
		wg.Wait()
		close(profileChan)
	}()

	profiles := make([]Profile, 0, len(profileChan))
	for profile := range profileChan {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
